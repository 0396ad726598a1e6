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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// fetchTotal counts CSV fetches by outcome (ok, status, error, too_large, stale, rejected).
	fetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ttable_csv_fetch_total",
			Help: "Total number of CSV fetches by outcome",
		},
		[]string{"outcome"},
	)

	// fetchDuration tracks the time until response headers arrive.
	fetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ttable_csv_fetch_duration_seconds",
			Help:    "Time to receive CSV response headers",
			Buckets: prometheus.DefBuckets,
		},
	)
)
