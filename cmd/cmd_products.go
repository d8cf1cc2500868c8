package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"store_admin/internal/usecase"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Manage the product directory",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products, optionally filtered by a name substring",
	RunE: func(cmd *cobra.Command, args []string) error {
		d := buildDeps()
		shell := cliShell{}
		dir := usecase.NewDirectory(d.client, shell, shell, d.log)
		if err := dir.Fetch(context.Background()); err != nil {
			return err
		}

		term, _ := cmd.Flags().GetString("search")
		products := dir.Search(term)

		fmt.Printf("%-6s %-30s %10s %7s\n", "ID", "NAME", "PRICE", "STOCK")
		for _, p := range products {
			fmt.Printf("%-6d %-30s %10.2f %7d\n", p.ID, p.Name, p.Price, p.Stock)
		}
		return nil
	},
}

var productsAddCmd = &cobra.Command{
	Use:   "add <name> <price> <stock>",
	Short: "Create a product",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := buildDeps()
		shell := cliShell{}
		dir := usecase.NewDirectory(d.client, shell, shell, d.log)
		if err := dir.Create(context.Background(), args[0], args[1], args[2]); err != nil {
			return err
		}
		fmt.Println("Product created.")
		return nil
	},
}

var productsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid product ID %q", args[0])
		}
		d := buildDeps()
		shell := cliShell{}
		dir := usecase.NewDirectory(d.client, shell, shell, d.log)
		if err := dir.Remove(context.Background(), id); err != nil {
			return err
		}
		fmt.Println("Product deleted.")
		return nil
	},
}

func init() {
	productsListCmd.Flags().String("search", "", "case-insensitive name filter")
	productsCmd.AddCommand(productsListCmd, productsAddCmd, productsRmCmd)
}
