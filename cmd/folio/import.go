package main

import (
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [dir]",
	Short: "Import markdown posts into the database",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cfg.ContentDir
		if len(args) == 1 {
			dir = args[0]
		}
		app := newApp()
		defer app.Close()
		if err := app.Open(); err != nil {
			return err
		}
		return importContent(cmd.Context(), app, dir)
	},
}
