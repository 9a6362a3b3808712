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

package search

import (
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var catalog = []Entry{
	{Id: "1", Name: "Forrest Gump (1994)"},
	{Id: "2", Name: "Legally Blonde (2001)"},
	{Id: "3", Name: "Toy Story (1995)"},
}

func TestResolve(t *testing.T) {
	match, err := Resolve("legally blond", catalog)
	require.NoError(t, err)
	assert.Equal(t, "2", match.Id)
	assert.Equal(t, "Legally Blonde (2001)", match.Name)
	assert.Greater(t, match.Score, float32(0.5))
}

func TestResolve_CaseInsensitive(t *testing.T) {
	match, err := Resolve("FORREST GUMP (1994)", catalog)
	require.NoError(t, err)
	assert.Equal(t, "1", match.Id)
	assert.Equal(t, float32(1), match.Score)
}

func TestResolve_AlwaysAnswers(t *testing.T) {
	// a nonsense query still resolves, with a weak score
	match, err := Resolve("qqqqqqqqqqqqqqqqqqqqqq", catalog)
	require.NoError(t, err)
	assert.NotEmpty(t, match.Id)
	assert.Less(t, match.Score, float32(0.3))
}

func TestResolve_EmptyCatalog(t *testing.T) {
	_, err := Resolve("anything", nil)
	assert.True(t, errors.IsNotFound(err))
}

func TestResolve_TieKeepsCatalogOrder(t *testing.T) {
	tied := []Entry{
		{Id: "a", Name: "It (2017)"},
		{Id: "b", Name: "It (2017)"},
	}
	match, err := Resolve("it", tied)
	require.NoError(t, err)
	assert.Equal(t, "a", match.Id)
}

func TestRank(t *testing.T) {
	matches, err := Rank("toy story", catalog, 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "3", matches[0].Id)
	assert.GreaterOrEqual(t, matches[0].Score, matches[1].Score)
}

func TestRank_EmptyCatalog(t *testing.T) {
	_, err := Rank("anything", nil, 5)
	assert.True(t, errors.IsNotFound(err))
}
