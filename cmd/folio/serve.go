package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eringen/folio"
	"github.com/eringen/folio/views"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Validate the content tree and serve the site",
		Long: `The serve command checks every document in the content directory and refuses
to start when any of them is invalid. Content is re-read on every request, so
edits show up without a restart.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return c.serve(ctx)
		},
	}
	cmd.Flags().String("addr", ":3000", "listen address")
	return cmd
}

func (c *cli) serve(ctx context.Context) error {
	app := folio.New(
		folio.SiteConfig{ContentDir: c.cfg.Content, Addr: c.cfg.Addr},
		views.Default(),
		folio.WithStaticDir(c.cfg.Public),
		folio.WithLogger(c.logger),
	)

	errc := make(chan error, 1)
	go func() {
		errc <- app.Start()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	c.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		c.logger.Error("shutdown", zap.Error(err))
		return err
	}
	select {
	case err := <-errc:
		return err
	case <-shutdownCtx.Done():
		return shutdownCtx.Err()
	}
}
