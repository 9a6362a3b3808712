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
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broom-io/broom/dataset"
)

// mockEngine returns every other item index, highest first, without any
// factorization.
type mockEngine struct {
	fitted *dataset.Matrix
}

func (m *mockEngine) Fit(_ context.Context, interactions *dataset.Matrix) error {
	m.fitted = interactions
	return nil
}

func (m *mockEngine) SimilarItems(itemIndex int32, n int) ([]Scored, error) {
	return m.rank(itemIndex, n)
}

func (m *mockEngine) RecommendItems(userIndex int32, n int) ([]Scored, error) {
	return m.rank(-1, n)
}

func (m *mockEngine) rank(exclude int32, n int) ([]Scored, error) {
	var scored []Scored
	for i := int32(m.fitted.Rows()) - 1; i >= 0 && len(scored) < n; i-- {
		if i != exclude {
			scored = append(scored, Scored{Index: i, Score: float32(i + 1)})
		}
	}
	return scored, nil
}

var movies = []dataset.Movie{
	{Id: "1", Title: "Forrest Gump (1994)"},
	{Id: "2", Title: "Legally Blonde (2001)"},
	{Id: "3", Title: "Toy Story (1995)"},
}

func newTestRecommender(t *testing.T) (*Recommender, *mockEngine) {
	t.Helper()
	snapshot, err := dataset.Build([]dataset.Observation{
		{UserId: "a", ItemId: "1", Strength: 1},
		{UserId: "a", ItemId: "2", Strength: 2},
		{UserId: "b", ItemId: "3", Strength: 1},
	})
	require.NoError(t, err)
	engine := new(mockEngine)
	recommender, err := NewRecommender(context.Background(), snapshot, movies, engine)
	require.NoError(t, err)
	return recommender, engine
}

func TestRecommender_SimilarToTitle(t *testing.T) {
	recommender, engine := newTestRecommender(t)
	// the engine was fitted on the item-major matrix
	assert.Equal(t, 3, engine.fitted.Rows())
	assert.Equal(t, 2, engine.fitted.Cols())

	match, recommendations, err := recommender.SimilarToTitle(context.Background(), "legally blond", 2)
	require.NoError(t, err)
	assert.Equal(t, "2", match.Id)
	require.Len(t, recommendations, 2)
	// item index 1 ("2") is excluded, leaving "3" then "1"
	assert.Equal(t, "3", recommendations[0].ItemId)
	assert.Equal(t, "Toy Story (1995)", recommendations[0].Title)
	assert.Equal(t, "1", recommendations[1].ItemId)
}

func TestRecommender_MinConfidence(t *testing.T) {
	recommender, _ := newTestRecommender(t)
	recommender.MinConfidence = 0.9
	match, _, err := recommender.SimilarToTitle(context.Background(), "zzzzzzzzzz", 2)
	assert.True(t, errors.IsNotFound(err))
	assert.NotEmpty(t, match.Name)
}

func TestRecommender_RecommendForUser(t *testing.T) {
	recommender, _ := newTestRecommender(t)
	recommendations, err := recommender.RecommendForUser(context.Background(), "a", 3)
	require.NoError(t, err)
	require.Len(t, recommendations, 3)
	assert.Equal(t, "3", recommendations[0].ItemId)

	_, err = recommender.RecommendForUser(context.Background(), "nobody", 3)
	assert.True(t, errors.IsNotFound(err))
}
