package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is the release version stamped at build time.
var Version = "dev"

var configFile string

var rootCmd = &cobra.Command{
	Use:   "gatehouse",
	Short: "Gatehouse is a request gatekeeping and authentication service",
	Long: `An authentication service that guards an API surface behind pluggable
strategies (basic auth, session cookies) and manages the account lifecycle:
registration, login, logout, and password reset.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to config file")
}
