// elCall: a high-throughput toolkit for nanopore read processing.
// Copyright (c) 2026 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elcall/blob/master/LICENSE.txt>.

package stats

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// NewPrometheusCallable registers a gauge vector labelled by stage and
// counter with reg and returns a Callable that mirrors each snapshot
// into it.
func NewPrometheusCallable(reg prometheus.Registerer, namespace string) (Callable, error) {
	gauge := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_counter",
			Help:      "Latest value of a pipeline stage counter",
		},
		[]string{"stage", "counter"},
	)
	if err := reg.Register(gauge); err != nil {
		return nil, err
	}
	return func(snapshot NamedStats) {
		for key, value := range snapshot {
			stage, counter := SplitKey(key)
			gauge.WithLabelValues(stage, counter).Set(value)
		}
	}, nil
}

// ServeMetrics exposes the metrics of gatherer on addr under /metrics.
// The returned function shuts the server down.
func ServeMetrics(addr string, gatherer prometheus.Gatherer) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Error("metrics endpoint failed", zap.String("addr", addr), zap.Error(err))
		}
	}()
	zap.L().Debug("serving metrics", zap.String("addr", addr))
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}
}

// NewLogCallable returns a Callable that logs snapshots at debug
// level, at most once per period.
func NewLogCallable(logger *zap.Logger, period time.Duration) Callable {
	limiter := rate.NewLimiter(rate.Every(period), 1)
	return func(snapshot NamedStats) {
		if !limiter.Allow() {
			return
		}
		fields := make([]zap.Field, 0, len(snapshot))
		for _, key := range snapshot.Keys() {
			fields = append(fields, zap.Float64(key, snapshot[key]))
		}
		logger.Debug("pipeline stats", fields...)
	}
}

// MarshalJSON returns s as indented JSON with sorted keys.
func MarshalJSON(s NamedStats) ([]byte, error) {
	return sonic.ConfigStd.MarshalIndent(s, "", "  ")
}

// WriteJSON writes s as a JSON summary file.
func WriteJSON(filename string, s NamedStats) error {
	data, err := MarshalJSON(s)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, append(data, '\n'), 0o644)
}
