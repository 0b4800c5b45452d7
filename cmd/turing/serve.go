package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/presentation/tui"
	httpAdapter "github.com/aretw0/turing/pkg/adapters/http"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Exposes the machines as a JSON API over HTTP, with Prometheus metrics
on /metrics and run events as SSE on /machines/{name}/events.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			opts.Addr, _ = cmd.Flags().GetString("addr")
		}
		watch, _ := cmd.Flags().GetBool("watch")

		promReg := prometheus.NewRegistry()
		promReg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := observability.NewMetrics(promReg)
		streams := httpAdapter.NewStreamManager()
		opts.Hooks = append(opts.Hooks, metrics.Hooks(), streams.Hooks())

		stack, err := openStack(cmd, opts)
		if err != nil {
			return err
		}
		defer stack.Close()

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()
		if watch {
			cli.Watch(sigCtx, stack.Registry, stack.Logger)
		}

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}))
		mux.Handle("/", httpAdapter.NewHandler(stack.Registry,
			httpAdapter.WithStreams(streams),
			httpAdapter.WithLogger(stack.Logger),
			httpAdapter.WithConcurrency(opts.Concurrency),
		))

		srv := &http.Server{
			Addr:              opts.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}

		if cli.IsTerminal(os.Stderr) {
			tui.PrintBanner(os.Stderr)
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			stack.Logger.Info("turing server listening", "addr", srv.Addr, "dir", opts.Dir)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-sigCtx.Done():
			stack.Logger.Info("shutdown started", "signal", sigCtx.Signal())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				_ = srv.Close()
				return fmt.Errorf("graceful shutdown did not complete: %w", err)
			}
			stack.Logger.Info("turing server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (default $TURING_ADDR or :8080)")
	serveCmd.Flags().BoolP("watch", "w", false, "Reload machine documents when they change (requires --dir)")
}
