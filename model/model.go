// Copyright 2026 broom Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package model defines the boundary to an external matrix factorization
// engine and the recommendation flow built on top of it.
package model

import (
	"context"

	"github.com/broom-io/broom/dataset"
)

// Scored is a dense index with the engine's relevance score.
type Scored struct {
	Index int32
	Score float32
}

// MatrixFactorizer is the contract for an external factorization engine, e.g.
// an ALS implementation. Fit receives the interaction matrix in the canonical
// item-major orientation; engines that want per-user rows should call
// Matrix.Transpose themselves. Indices in query results refer to the fitted
// matrix's rows (items) and columns (users).
type MatrixFactorizer interface {
	// Fit trains the engine on an item-major interaction matrix.
	Fit(ctx context.Context, interactions *dataset.Matrix) error
	// SimilarItems returns up to n item indices ranked by similarity to the
	// given item index.
	SimilarItems(itemIndex int32, n int) ([]Scored, error)
	// RecommendItems returns up to n item indices ranked by predicted
	// preference of the given user index.
	RecommendItems(userIndex int32, n int) ([]Scored, error)
}
