// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/guide-curator/internal/api"
	"github.com/pdiddy/guide-curator/internal/submission"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve submission scoring and validation over HTTP",
	Long: `Serve exposes:

  GET  /healthz
  POST /submissions/score      grade a submission
  POST /submissions/validate   grade, check for duplicates and store
  GET  /drafts/{id}            fetch a stored draft`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides serve.addr)")
	viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	v := submission.New(submission.Options{
		Store:      s,
		Engine:     newEngine(),
		Thresholds: &cfg.Similarity.SubmissionThresholds,
		Logger:     logger,
	})
	srv := &http.Server{
		Addr:              cfg.Serve.Addr,
		Handler:           api.New(v, s, logger).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
