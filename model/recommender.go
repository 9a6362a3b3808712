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

package model

import (
	"context"

	"github.com/juju/errors"
	"github.com/samber/lo"

	"github.com/broom-io/broom/dataset"
	"github.com/broom-io/broom/search"
)

// Recommendation is a recommended item with its display name and the
// engine's relevance score.
type Recommendation struct {
	ItemId string
	Title  string
	Score  float32
}

// Recommender resolves free-text titles against the catalog and queries the
// factorization engine through the snapshot's index mappers.
type Recommender struct {
	snapshot *dataset.Snapshot
	catalog  []search.Entry
	titles   map[string]string // item id -> display name
	engine   MatrixFactorizer

	// MinConfidence rejects resolutions whose fuzzy match score falls below
	// the threshold. Zero accepts every resolution.
	MinConfidence float32
}

// NewRecommender creates a recommender and fits the engine on the snapshot's
// item-major interaction matrix.
func NewRecommender(ctx context.Context, snapshot *dataset.Snapshot, movies []dataset.Movie, engine MatrixFactorizer) (*Recommender, error) {
	if err := engine.Fit(ctx, snapshot.ItemMajor()); err != nil {
		return nil, errors.Trace(err)
	}
	return &Recommender{
		snapshot: snapshot,
		catalog: lo.Map(movies, func(movie dataset.Movie, _ int) search.Entry {
			return search.Entry{Id: movie.Id, Name: movie.Title}
		}),
		titles: lo.SliceToMap(movies, func(movie dataset.Movie) (string, string) {
			return movie.Id, movie.Title
		}),
		engine: engine,
	}, nil
}

// SimilarToTitle resolves a free-text title and returns up to n items similar
// to it. The resolved match is returned alongside so callers can show what
// the query was interpreted as.
func (r *Recommender) SimilarToTitle(ctx context.Context, query string, n int) (search.Match, []Recommendation, error) {
	match, err := search.Resolve(query, r.catalog)
	if err != nil {
		return search.Match{}, nil, errors.Trace(err)
	}
	if match.Score < r.MinConfidence {
		return match, nil, errors.NotFoundf("confident match for %q (best %q at %.2f)", query, match.Name, match.Score)
	}
	itemIndex := r.snapshot.ItemIndex().ToNumber(match.Id)
	if itemIndex == dataset.NotId {
		// catalog entries without observations can't be queried
		return match, nil, errors.NotFoundf("interactions for item %v", match.Id)
	}
	scored, err := r.engine.SimilarItems(itemIndex, n)
	if err != nil {
		return match, nil, errors.Trace(err)
	}
	recommendations, err := r.describe(scored)
	return match, recommendations, errors.Trace(err)
}

// RecommendForUser returns up to n items ranked by predicted preference of a
// raw user id.
func (r *Recommender) RecommendForUser(ctx context.Context, userId string, n int) ([]Recommendation, error) {
	userIndex := r.snapshot.UserIndex().ToNumber(userId)
	if userIndex == dataset.NotId {
		return nil, errors.NotFoundf("user %v", userId)
	}
	scored, err := r.engine.RecommendItems(userIndex, n)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return r.describe(scored)
}

// describe converts engine item indices back to raw ids and display names.
func (r *Recommender) describe(scored []Scored) ([]Recommendation, error) {
	recommendations := make([]Recommendation, 0, len(scored))
	for _, s := range scored {
		itemId, err := r.snapshot.ItemIndex().ToName(s.Index)
		if err != nil {
			return nil, errors.Trace(err)
		}
		title, exist := r.titles[itemId]
		if !exist {
			// fall back to the raw id for items missing from the catalog
			title = itemId
		}
		recommendations = append(recommendations, Recommendation{
			ItemId: itemId,
			Title:  title,
			Score:  s.Score,
		})
	}
	return recommendations, nil
}
