package main

import (
	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/usersapi/internal/users/app"
)

var rootCmd = &cobra.Command{
	Use:   "usersapi",
	Short: "Users and authentication REST service",
	Long: `usersapi serves the users CRUD and auth API.

Configuration is read from the environment (PORT, JWT_SECRET_KEY,
DATABASE_DRIVER, CACHE_HOST, EMAIL_*, ...). Running without a subcommand
is the same as "usersapi serve".

Examples:
  usersapi serve
  usersapi migrate
  usersapi seed --count 200`,
	Version:      app.BuildVersion,
	SilenceUsage: true,
	RunE:         runServe,
}
