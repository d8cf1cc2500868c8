package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"store_admin/internal/usecase"
)

// cliShell is the non-interactive Navigator/Notifier: navigation requests
// become hints on stderr, notices go to stdout.
type cliShell struct{}

func (cliShell) Goto(route string) {
	if route == usecase.RouteLogin {
		fmt.Fprintln(os.Stderr, "Session is missing or expired. Run 'store-admin login' first.")
	}
}

func (cliShell) Success(msg string) { fmt.Println(msg) }

func (cliShell) Error(msg string) { fmt.Fprintln(os.Stderr, msg) }

func promptCredentials(cmd *cobra.Command) (string, string, error) {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	reader := bufio.NewReader(os.Stdin)
	if email == "" {
		fmt.Print("Email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", err
		}
		email = strings.TrimSpace(line)
	}
	if password == "" {
		fmt.Print("Password: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", err
		}
		password = strings.TrimSpace(line)
	}
	return email, password, nil
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session credential",
	RunE: func(cmd *cobra.Command, args []string) error {
		d := buildDeps()
		email, password, err := promptCredentials(cmd)
		if err != nil {
			return err
		}
		auth := usecase.NewAuth(d.client, d.store, d.log)
		if err := auth.Login(context.Background(), email, password); err != nil {
			return err
		}
		fmt.Println("Logged in.")
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		d := buildDeps()
		email, password, err := promptCredentials(cmd)
		if err != nil {
			return err
		}
		auth := usecase.NewAuth(d.client, d.store, d.log)
		if err := auth.Register(context.Background(), email, password); err != nil {
			return err
		}
		fmt.Println("Registered. Run 'store-admin login' to sign in.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session credential",
	RunE: func(cmd *cobra.Command, args []string) error {
		d := buildDeps()
		auth := usecase.NewAuth(d.client, d.store, d.log)
		if err := auth.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, registerCmd} {
		c.Flags().String("email", "", "account email")
		c.Flags().String("password", "", "account password (prompted when omitted)")
	}
}
