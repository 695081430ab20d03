// Package metricsserver serves a prometheus registry over HTTP.
package metricsserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go.schedpool.org/scheduler/logger"
)

type Metrics struct {
	registry *prometheus.Registry
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	return &Metrics{registry: registry}
}

// Registry returns the prometheus registry served by this server.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	log := logger.NewStdLog("prom http", nil)

	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorLog:      log,
		ErrorHandling: promhttp.ContinueOnError,
	})
}

// ListenAndServe runs the metrics server until the context is cancelled.
func (m *Metrics) ListenAndServe(ctx context.Context, port int) error {
	log := logger.FromContext(ctx)

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 20 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("metrics server shutdown", "err", err)
		}
	}()

	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
