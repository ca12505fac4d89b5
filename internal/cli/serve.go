package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ariahq/aria/internal/config"
	"github.com/ariahq/aria/internal/server"
	"github.com/ariahq/aria/internal/snippet"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the assistant HTTP server",
		Long: `Start the assistant server. It exposes the chat UI on GET /, the chat
endpoint on POST /chat and the file-upload endpoint on POST /upload.

The snippet table is watched for changes and hot-reloaded while the server
runs. Press Ctrl-C to stop.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			log, err := zap.NewProduction()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer log.Sync()

			assistant, snippets, err := buildAssistant(cfg, true)
			if err != nil {
				return err
			}
			uploads, err := buildUploadRouter(cfg)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:    cfg.Server.Addr,
				Handler: server.New(assistant, uploads, buildSynthesizer(cfg), log).Handler(),
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			debounce := time.Duration(cfg.Snippets.DebounceMs) * time.Millisecond
			watcher, err := snippet.NewWatcher(snippets, debounce, log)
			if err != nil {
				return err
			}

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return watcher.Run(ctx)
			})
			g.Go(func() error {
				log.Info("assistant listening",
					zap.String("addr", cfg.Server.Addr),
					zap.Int("snippets", snippets.Len()),
					zap.String("vision_provider", cfg.Vision.Provider),
				)
				if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})

			if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			log.Info("assistant stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to config.toml (default ~/.config/aria/config.toml)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
