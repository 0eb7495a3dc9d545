package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-normalizer/internal/server"
	"github.com/jonathan/resume-normalizer/internal/server/ratelimit"
	"github.com/jonathan/resume-normalizer/internal/tailor"
)

func newServeCmd(a *app) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long:  "Start an HTTP server exposing normalization, reconciliation and tailoring sessions.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port != 0 {
				a.cfg.Port = port
				if err := a.cfg.Validate(); err != nil {
					return err
				}
			}
			return a.runServe(cmd)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (overrides config)")
	return cmd
}

func (a *app) runServe(cmd *cobra.Command) error {
	ctx := cmd.Context()

	client, closeClient, err := a.newTailorer(ctx)
	if err != nil {
		return err
	}
	defer closeClient()

	kv, closeStore, err := a.newStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	srv := server.New(server.Config{
		Addr:          a.cfg.Addr(),
		Logger:        a.logger,
		Options:       a.pipelineOptions(),
		Tailorer:      client,
		Store:         kv,
		TailorTimeout: a.cfg.Timeout(tailor.DefaultTimeout),
		RateLimit:     ratelimit.LoadConfig(os.LookupEnv),
	})
	return srv.Start(ctx)
}
