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

package csvimport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mythras-eg/ttable/core/tables"
)

var (
	// ErrStale is returned by Loader.Load when a newer load for the same
	// table was started before this one finished.
	ErrStale = errors.New("superseded by a newer load")
	// ErrFetchStatus is returned for non-2xx responses.
	ErrFetchStatus = errors.New("unexpected response status")
	// ErrTooLarge is returned when a response exceeds Fetcher.MaxBytes.
	ErrTooLarge = errors.New("response too large")
	// ErrURLNotAllowed is returned for URLs that are not http(s) or whose
	// host is not in Fetcher.AllowedHosts.
	ErrURLNotAllowed = errors.New("url not allowed")
)

// Fetcher downloads CSV text over HTTP.
type Fetcher struct {
	Client   *http.Client
	Timeout  time.Duration // per request, 0 for none
	MaxBytes int64         // 0 for no limit
	// AllowedHosts lists the hosts that may be fetched, either as "host"
	// or "host:port". An empty list rejects every URL.
	AllowedHosts []string
}

// NewFetcher returns a fetcher using http.DefaultClient.
func NewFetcher(timeout time.Duration, maxBytes int64, allowedHosts ...string) *Fetcher {
	return &Fetcher{Client: http.DefaultClient, Timeout: timeout, MaxBytes: maxBytes, AllowedHosts: allowedHosts}
}

// CheckURL reports whether raw may be fetched.
func (f *Fetcher) CheckURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrURLNotAllowed, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q", ErrURLNotAllowed, u.Scheme)
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return fmt.Errorf("%w: missing host", ErrURLNotAllowed)
	}
	allowed := slices.ContainsFunc(f.AllowedHosts, func(h string) bool {
		h = strings.ToLower(h)
		return h == host || h == strings.ToLower(u.Host)
	})
	if !allowed {
		return fmt.Errorf("%w: host %q", ErrURLNotAllowed, u.Host)
	}
	return nil
}

// Fetch GETs url and returns the body. Transport errors and non-2xx
// statuses are returned to the caller.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := f.CheckURL(url); err != nil {
		fetchTotal.WithLabelValues("rejected").Inc()
		return "", err
	}
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		fetchTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		fetchTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	fetchDuration.Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fetchTotal.WithLabelValues("status").Inc()
		return "", fmt.Errorf("%w: %s from %s", ErrFetchStatus, resp.Status, url)
	}

	var body io.Reader = resp.Body
	if f.MaxBytes > 0 {
		body = io.LimitReader(resp.Body, f.MaxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		fetchTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("failed to read %s: %w", url, err)
	}
	if f.MaxBytes > 0 && int64(len(data)) > f.MaxBytes {
		fetchTotal.WithLabelValues("too_large").Inc()
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, url, f.MaxBytes)
	}
	fetchTotal.WithLabelValues("ok").Inc()
	return string(data), nil
}

// inflight is the handle of the latest load of one table.
type inflight struct {
	gen    uint64
	cancel context.CancelFunc
}

// Loader fetches CSV tables, keeping at most one load per table id in
// flight. Starting a load cancels the previous one for the same id, and a
// response that is no longer the latest is discarded with ErrStale.
type Loader struct {
	fetcher *Fetcher

	mu       sync.Mutex
	gen      uint64
	inflight map[string]inflight
}

// NewLoader creates a loader on top of f.
func NewLoader(f *Fetcher) *Loader {
	return &Loader{fetcher: f, inflight: make(map[string]inflight)}
}

// Load fetches url and converts it into a table with the given id. When
// commit is not nil it is called with the table while the load is still
// the latest for id, and no newer load can commit until it returns.
func (l *Loader) Load(ctx context.Context, id, url string, options ImportOptions, commit func(*tables.Table) error) (*tables.Table, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l.mu.Lock()
	l.gen++
	gen := l.gen
	if prev, ok := l.inflight[id]; ok {
		prev.cancel()
	}
	l.inflight[id] = inflight{gen: gen, cancel: cancel}
	l.mu.Unlock()

	var t *tables.Table
	text, err := l.fetcher.Fetch(ctx, url)
	if err == nil {
		t, err = Import(id, text, options)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.inflight[id].gen != gen {
		log.Debug().Str("table", id).Str("url", url).Msg("discarding superseded CSV load")
		fetchTotal.WithLabelValues("stale").Inc()
		return nil, ErrStale
	}
	delete(l.inflight, id)
	if err != nil {
		return nil, err
	}
	if commit != nil {
		if err := commit(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Cancel aborts the in-flight load of a table, if any.
func (l *Loader) Cancel(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if prev, ok := l.inflight[id]; ok {
		prev.cancel()
		delete(l.inflight, id)
	}
}
