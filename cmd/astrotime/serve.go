package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/subtlepseudonym/astrotime"
	"github.com/subtlepseudonym/astrotime/diag"
	"github.com/subtlepseudonym/astrotime/registry"
)

const shutdownTimeout = 5 * time.Second

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve conversions over HTTP and keep data files fresh",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "override listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if listenAddr != "" {
		cfg.Listen = listenAddr
	}

	reg := registry.Default()
	if _, err := reg.SetMetrics(diag.NewPrometheusMetrics(prometheus.DefaultRegisterer)); err != nil {
		return err
	}

	reloader := astrotime.NewReloader(reg, cfg.LeapSeconds.File, cfg.Eop.File)

	reloadCron := cron.New()
	if cfg.Reload.Schedule != "" && (reloader.LeapFile != "" || reloader.EopFile != "") {
		if _, err := reloader.Schedule(reloadCron, cfg.Reload.Schedule); err != nil {
			return err
		}
		log.Infow("reload scheduled", "schedule", cfg.Reload.Schedule)
	}

	mux := http.NewServeMux()
	astrotime.NewHandler(reg).Register(mux)
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infow("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		<-reloadCron.Stop().Done()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.Reload.Watch {
		watcher, err := reloader.Watch()
		if err != nil {
			stop()
			_ = g.Wait()
			return err
		}
		g.Go(func() error {
			return watcher.Run(ctx)
		})
	}

	reloadCron.Start()
	return g.Wait()
}
