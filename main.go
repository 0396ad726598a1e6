/*
SPDX-License-Identifier: Apache-2.0

Copyright 2026 The ttable Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// ttable serves interactive table widgets over HTTP.
//
// Usage:
//
//	ttable [--config path] [--addr 127.0.0.1:8097] [--no-demo]
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mythras-eg/ttable/core/config"
	"github.com/mythras-eg/ttable/core/csvimport"
	"github.com/mythras-eg/ttable/core/server"
	"github.com/mythras-eg/ttable/datasources"
	"github.com/mythras-eg/ttable/demo"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	addrOverride := flag.String("addr", "", "listen address override (e.g. :8097)")
	noDemo := flag.Bool("no-demo", false, "do not register the demo tables")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.LoadServerConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("config", *configPath).Msg("config load failed")
	}
	if *addrOverride != "" {
		cfg.Server.Addr = *addrOverride
	}
	if *noDemo {
		cfg.Server.Demo = false
	}
	setupLogging(cfg.Log)

	loader := csvimport.NewLoader(csvimport.NewFetcher(cfg.Fetch.Timeout, cfg.Fetch.MaxBytes, cfg.FetchHosts()...))
	srv, err := server.NewServer(
		server.WithTitle("ttable", "Sortable, searchable and editable tables"),
		server.WithLoader(loader),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("server setup failed")
	}

	if cfg.Server.Demo {
		entries, err := demo.Tables()
		if err != nil {
			log.Fatal().Err(err).Msg("demo tables failed")
		}
		for _, e := range entries {
			if err := srv.Register(e.Title, e.Source, e.Table, e.Config); err != nil {
				log.Fatal().Err(err).Msg("demo table registration failed")
			}
		}
	}

	manager := datasources.NewManager()
	if *configPath != "" {
		manager.SetBaseDir(filepath.Dir(*configPath))
	}
	manager.RegisterLoader(datasources.NewCsvLoader(loader))
	manager.RegisterLoader(datasources.NewHTMLLoader())
	manager.RegisterLoader(datasources.NewXlsxLoader())
	if cfg.Fetch.RestBase != "" {
		manager.RegisterLoader(datasources.NewSearchLoader(datasources.NewRestClient(cfg.Fetch.RestBase, cfg.Fetch.Timeout)))
	}
	loadPresets(srv, manager, cfg.Tables)

	httpSrv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().
			Str("addr", cfg.Server.Addr).
			Bool("demo", cfg.Server.Demo).
			Int("presets", len(cfg.Tables)).
			Msg("ttable started")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
	log.Info().Msg("stopped")
}

// setupLogging applies the configured level and output format.
func setupLogging(lc config.LogConfig) {
	level, err := zerolog.ParseLevel(lc.Level)
	if err != nil {
		log.Warn().Str("level", lc.Level).Msg("unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if lc.Format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}

// loadPresets registers the configured tables. A preset that fails to
// load is logged and skipped.
func loadPresets(srv *server.Server, manager *datasources.Manager, presets []config.TablePreset) {
	ctx := context.Background()
	for _, p := range presets {
		if err := manager.AddPreset(p); err != nil {
			log.Error().Err(err).Str("table", p.ID).Msg("invalid preset")
			continue
		}
		widgetCfg, err := p.WidgetConfig()
		if err != nil {
			log.Error().Err(err).Str("table", p.ID).Msg("invalid widget config")
			continue
		}
		t, err := manager.LoadData(ctx, p.ID)
		if err != nil {
			log.Error().Err(err).Str("table", p.ID).Msg("preset load failed")
			continue
		}
		if err := srv.Register(p.Title, p.Source, t, widgetCfg); err != nil {
			log.Error().Err(err).Str("table", p.ID).Msg("preset registration failed")
		}
	}
}
