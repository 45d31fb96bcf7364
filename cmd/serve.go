package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/guttosm/badge-service/internal/app"
)

const closeTimeout = 10 * time.Second

func newServeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.serve(cmd.Context())
		},
	}
}

// serve runs the service until SIGINT or SIGTERM, then drains requests and
// flushes pending request logs.
func (c *cli) serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.InitializeApp(c.cfg)
	if err != nil {
		return err
	}

	server := app.NewServer(application.Router, c.cfg.Server.Port, c.cfg.Server.RequestTimeout)
	runErr := server.RunContext(ctx)

	closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	closeErr := application.Close(closeCtx)
	if closeErr != nil {
		log.Warn().Err(closeErr).Msg("Failed to release resources")
	}

	return errors.Join(runErr, closeErr)
}
