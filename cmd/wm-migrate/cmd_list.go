package main

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Commands to list items",
	Long: `
Commands in this namespace are to help you explore the source content API
before committing to a migration.
`,
}

func init() {
	rootCmd.AddCommand(listCmd)
}
