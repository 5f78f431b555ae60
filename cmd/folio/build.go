package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var outDir string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the site as static files",
	Long: `build imports the content directory, if there is one, then renders every
published page, the feed, the sitemap and robots.txt into the output
directory together with a copy of the static directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app := newApp()
		defer app.Close()
		if err := app.Open(); err != nil {
			return err
		}
		if dirExists(cfg.ContentDir) {
			if err := importContent(ctx, app, cfg.ContentDir); err != nil {
				return err
			}
		}
		return app.Build(ctx, outDir)
	},
}

func init() {
	buildCmd.Flags().StringVarP(&outDir, "out", "o", "dist", "output directory")
}
