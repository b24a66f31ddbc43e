// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package export ships benchmark samples to external systems.
//
// Both sinks are optional and disabled unless configured:
//
//   - WritePrometheusTextfile writes gauges in the node_exporter textfile
//     collector format, so a host's existing Prometheus scrape picks them up.
//   - InfluxSink writes one InfluxDB v2 point per sample.
package export
