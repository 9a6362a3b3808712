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

// Package search resolves free-text queries against a catalog of display
// names by approximate string similarity.
package search

import (
	"slices"
	"strings"

	"github.com/hbollon/go-edlib"
	"github.com/juju/errors"
)

// Entry is a catalog row: an entity id and its display name.
type Entry struct {
	Id   string
	Name string
}

// Match is a resolved entry. Score is a similarity in [0, 1]; a non-empty
// catalog always yields a match, however weak, so callers should apply their
// own acceptance threshold on Score.
type Match struct {
	Id    string
	Name  string
	Score float32
}

// Resolve returns the catalog entry whose name is most similar to the query.
// Matching is case-insensitive. Ties keep the first maximal entry in catalog
// order.
func Resolve(query string, catalog []Entry) (Match, error) {
	if len(catalog) == 0 {
		return Match{}, errors.NotFoundf("match in empty catalog")
	}
	best := Match{Score: -1}
	for _, entry := range catalog {
		score, err := similarity(query, entry.Name)
		if err != nil {
			return Match{}, errors.Trace(err)
		}
		if score > best.Score {
			best = Match{Id: entry.Id, Name: entry.Name, Score: score}
		}
	}
	return best, nil
}

// Rank returns up to n matches ordered by descending score. Entries with
// equal scores stay in catalog order.
func Rank(query string, catalog []Entry, n int) ([]Match, error) {
	if len(catalog) == 0 {
		return nil, errors.NotFoundf("match in empty catalog")
	}
	matches := make([]Match, 0, len(catalog))
	for _, entry := range catalog {
		score, err := similarity(query, entry.Name)
		if err != nil {
			return nil, errors.Trace(err)
		}
		matches = append(matches, Match{Id: entry.Id, Name: entry.Name, Score: score})
	}
	slices.SortStableFunc(matches, func(a, b Match) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
	if n < len(matches) {
		matches = matches[:n]
	}
	return matches, nil
}

func similarity(query, name string) (float32, error) {
	return edlib.StringsSimilarity(strings.ToLower(query), strings.ToLower(name), edlib.Levenshtein)
}
