package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ibaslogic/folio"
	"github.com/ibaslogic/folio/content"
)

var watch bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the blog over HTTP",
	Long: `serve imports the content directory, if there is one, and starts the
HTTP server. With --watch, edits to markdown files are re-imported live.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app := newApp()
		defer app.Close()
		if err := app.Open(); err != nil {
			return err
		}

		if dirExists(cfg.ContentDir) {
			reload := func() error { return importContent(ctx, app, cfg.ContentDir) }
			if err := reload(); err != nil {
				return err
			}
			if watch {
				go func() {
					if err := content.Watch(ctx, cfg.ContentDir, app.Logger, reload); err != nil {
						app.Logger.Errorf("watch: %v", err)
					}
				}()
			}
		}
		return app.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&watch, "watch", false, "re-import content when files change")
}

func importContent(ctx context.Context, app *folio.App, dir string) error {
	n, err := content.Import(ctx, dir, app.Store)
	// Some posts may have been saved before a failure.
	app.Cache.Invalidate()
	if err != nil {
		return err
	}
	app.Logger.Infof("imported %d posts from %s", n, dir)
	return nil
}
