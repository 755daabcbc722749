package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/usersapi/internal/users/app"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert fake users for local development",
	Long: `Insert fake users generated with gofakeit.

Nothing is inserted when the database already has live users unless --force
is given. Seeded users share a random password nobody knows.

Examples:
  usersapi seed
  usersapi seed --count 50 --force`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().IntP("count", "n", 200, "number of users to create")
	seedCmd.Flags().BoolP("force", "f", false, "seed even when users already exist")

	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	force, _ := cmd.Flags().GetBool("force")

	cfg := app.LoadConfig()

	db, err := app.OpenStore(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.ApplyMigrations(); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	n, err := app.Seed(cmd.Context(), db, count, force)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	if n == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "users already present, nothing seeded (use --force to seed anyway)")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users\n", n)
	return nil
}
