package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "pokedex",
	Short:        "Browse the Pokédex catalog",
	Long:         "Serve the Pokédex catalog over HTTP or run a single filter, sort and paginate query against it.",
	SilenceUsage: true,
}

var rootArgs struct {
	envFile string
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&rootArgs.envFile,
		"env-file",
		".env",
		"Environment file to load before reading configuration",
	)

	rootCmd.AddCommand(serveCmd, queryCmd)
}
