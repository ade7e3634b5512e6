package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgerly/ledgerly/internal/infrastructure/auth"
	"github.com/ledgerly/ledgerly/internal/infrastructure/config"
	"github.com/ledgerly/ledgerly/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ledgerly-cli",
		Short: "Ledgerly CLI tool",
		Long:  `A command line interface for operating a Ledgerly deployment.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Ledgerly API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(tokenCmd())
	rootCmd.AddCommand(familyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	var migrationsPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}

	cmd.PersistentFlags().StringVar(&migrationsPath, "path", "migrations", "Path to migration files")

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return postgres.RunMigrations(cfg.DatabaseURL, migrationsPath)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return postgres.RunMigrationsDown(cfg.DatabaseURL, migrationsPath)
		},
	})

	return cmd
}

func tokenCmd() *cobra.Command {
	var (
		familyID string
		scopes   []string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an API token for a family",
		RunE: func(cmd *cobra.Command, args []string) error {
			if familyID == "" {
				return fmt.Errorf("--family is required")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.JWTSecret == "" {
				return fmt.Errorf("JWT_SECRET must be set to mint tokens")
			}

			for _, s := range scopes {
				if s != auth.ScopeRead && s != auth.ScopeWrite {
					return fmt.Errorf("unknown scope %q, valid scopes: %s, %s", s, auth.ScopeRead, auth.ScopeWrite)
				}
			}

			manager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
			token, err := manager.Generate(familyID, scopes)
			if err != nil {
				return err
			}

			fmt.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&familyID, "family", "", "Family ID the token acts for")
	cmd.Flags().StringSliceVar(&scopes, "scopes", []string{auth.ScopeRead, auth.ScopeWrite}, "Scopes to grant")

	return cmd
}

func familyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "family",
		Short: "Family operations",
	}

	var (
		name     string
		currency string
	)

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a family via the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := json.Marshal(map[string]string{
				"name":     name,
				"currency": strings.ToUpper(currency),
			})
			if err != nil {
				return err
			}

			client := &http.Client{Timeout: timeout}
			req, err := http.NewRequest(http.MethodPost, baseURL+"/api/v1/families", bytes.NewReader(body))
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-Family-ID", "bootstrap")

			resp, err := client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			payload, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusCreated {
				return fmt.Errorf("create failed (status %d): %s", resp.StatusCode, string(payload))
			}

			fmt.Println(string(payload))
			return nil
		},
	}

	createCmd.Flags().StringVar(&name, "name", "", "Family name")
	createCmd.Flags().StringVar(&currency, "currency", "USD", "Family currency code")

	cmd.AddCommand(createCmd)

	return cmd
}
