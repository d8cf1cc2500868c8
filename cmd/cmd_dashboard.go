package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"store_admin/internal/usecase"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print the dashboard summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		d := buildDeps()
		dash := usecase.NewDashboard(d.client, cliShell{}, d.log)
		if err := dash.Refresh(context.Background()); err != nil {
			return err
		}

		stats := dash.Stats()
		fmt.Printf("Total Products:     %d\n", stats.TotalProducts)
		fmt.Printf("Total Sales:        %d\n", stats.TotalSales)
		fmt.Printf("Revenue:            $%.2f\n", stats.TotalRevenue)
		fmt.Printf("Low Stock Products: %d\n", stats.LowStockProducts)

		if recent := dash.Recent(); len(recent) > 0 {
			fmt.Println("\nRecent Sales:")
			for _, s := range recent {
				fmt.Printf("  %-24s x%-4d $%-10.2f %s\n", s.ProductName, s.Quantity, s.TotalAmount, s.SaleDate)
			}
		}
		return nil
	},
}
