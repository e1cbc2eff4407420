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


// Package ranking scores place candidates against a free-text query.
//
// The Engine type combines four signals into one composite score:
//   - Semantic similarity between the query and a per-place text profile,
//     min-max normalized across the current candidate set
//   - Linear distance decay within the search radius
//   - A keyword-category heuristic from the shared lexicon
//   - A per-user personalization boost from feedback history
//
// The personalization term enters the composite as 0.05 x (boost + 0.10),
// so it moves the total by at most 0.01 regardless of the boost magnitude.
// That weighting is kept for compatibility with existing score expectations
// and is a candidate for recalibration.
package ranking
