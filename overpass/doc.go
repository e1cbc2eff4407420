// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package overpass acquires place candidates from the Overpass API.
//
// A Client fans out over several public Overpass instances with randomized
// failover, retries with linear backoff, normalizes the heterogeneous element
// shapes (nodes, ways, relations) into canonical core.Place records, and
// caches results for a short time window so bursts of identical requests do
// not hammer the upstream.
//
// Worst-case latency for a single Fetch is bounded by
// attempts x endpoints x per-call timeout plus backoff delays; with the
// defaults that is 3 x 3 x 30s + 1.8s. Callers wanting a tighter bound
// should supply their own http.Client via WithHTTPClient.
package overpass
