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

package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// widgetOps counts widget actions by operation and outcome (ok, error, ignored).
	widgetOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ttable_widget_ops_total",
			Help: "Total number of widget operations by type and outcome",
		},
		[]string{"op", "outcome"},
	)

	// widgetsServed is the number of registered widgets.
	widgetsServed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ttable_widgets",
			Help: "Number of widgets served",
		},
	)
)
