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

package internal

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "ELCALL"

// Config holds the process-wide tuning knobs that are not command
// flags. Queue depths and sampling periods are deployment tuning, so
// they are read from the environment.
type Config struct {
	Pipeline PipelineConfig
	Logging  LogConfig
	Metrics  MetricsConfig
}

// PipelineConfig holds queue and sampling configuration.
type PipelineConfig struct {
	QueueSize       int           `envconfig:"QUEUE_SIZE"`
	WriterQueueSize int           `envconfig:"WRITER_QUEUE_SIZE"`
	StatsPeriod     time.Duration `envconfig:"STATS_PERIOD"`
	StatsLogPeriod  time.Duration `envconfig:"STATS_LOG_PERIOD"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL"`
	Development bool   `envconfig:"LOG_DEV"`
}

// MetricsConfig holds the Prometheus endpoint configuration. An empty
// address disables the endpoint.
type MetricsConfig struct {
	Address string `envconfig:"METRICS_ADDR"`
}

// LoadConfig reads the configuration from ELCALL_* environment
// variables on top of DefaultConfig. Each section is processed on its
// own, so that keys are ELCALL_QUEUE_SIZE rather than
// ELCALL_PIPELINE_QUEUE_SIZE.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()
	for _, section := range []interface{}{&cfg.Pipeline, &cfg.Logging, &cfg.Metrics} {
		if err := envconfig.Process(EnvPrefix, section); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the configuration used when no environment
// variables are set.
func DefaultConfig() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			QueueSize:       10000,
			WriterQueueSize: 10000,
			StatsPeriod:     100 * time.Millisecond,
			StatsLogPeriod:  5 * time.Second,
		},
		Logging: LogConfig{
			Level: "info",
		},
	}
}

func (cfg *Config) validate() error {
	if cfg.Pipeline.QueueSize <= 0 {
		return fmt.Errorf("invalid %v_QUEUE_SIZE %v", EnvPrefix, cfg.Pipeline.QueueSize)
	}
	if cfg.Pipeline.WriterQueueSize <= 0 {
		return fmt.Errorf("invalid %v_WRITER_QUEUE_SIZE %v", EnvPrefix, cfg.Pipeline.WriterQueueSize)
	}
	if cfg.Pipeline.StatsPeriod <= 0 {
		return fmt.Errorf("invalid %v_STATS_PERIOD %v", EnvPrefix, cfg.Pipeline.StatsPeriod)
	}
	return nil
}
