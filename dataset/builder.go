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

package dataset

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
)

// Snapshot is the read-only result of a build: the interaction matrix plus
// the user and item indices. It is created once per batch of observations and
// never mutated, so it may be shared across goroutines freely.
type Snapshot struct {
	interactions *Matrix
	userIndex    *Index
	itemIndex    *Index
}

// Build converts a batch of observations into a snapshot.
//
// The canonical orientation of the interaction matrix is item-major: rows are
// items and columns are users. Repeated observations on the same (item, user)
// cell sum. The observation order doesn't affect the result.
func Build(observations []Observation) (*Snapshot, error) {
	if len(observations) == 0 {
		return nil, errors.NotValidf("empty observations")
	}
	users := mapset.NewThreadUnsafeSet[string]()
	items := mapset.NewThreadUnsafeSet[string]()
	for _, o := range observations {
		if err := o.validate(); err != nil {
			return nil, errors.Trace(err)
		}
		users.Add(o.UserId)
		items.Add(o.ItemId)
	}
	userIndex := NewIndex(users.ToSlice())
	itemIndex := NewIndex(items.ToSlice())
	triples := make([]triple, len(observations))
	for i, o := range observations {
		triples[i] = triple{
			row:   itemIndex.ToNumber(o.ItemId),
			col:   userIndex.ToNumber(o.UserId),
			value: o.Strength,
		}
	}
	return &Snapshot{
		interactions: newMatrix(int(itemIndex.Len()), int(userIndex.Len()), triples),
		userIndex:    userIndex,
		itemIndex:    itemIndex,
	}, nil
}

// ItemMajor returns the interaction matrix with items as rows and users as
// columns. This is the canonical orientation and the returned matrix is
// shared, not copied.
func (s *Snapshot) ItemMajor() *Matrix {
	return s.interactions
}

// UserMajor returns a transposed copy with users as rows and items as
// columns. Factorization engines that expect per-user rows should transpose
// here, at the engine boundary, rather than reorienting the snapshot.
func (s *Snapshot) UserMajor() *Matrix {
	return s.interactions.Transpose()
}

// UserIndex returns the user id index.
func (s *Snapshot) UserIndex() *Index {
	return s.userIndex
}

// ItemIndex returns the item id index.
func (s *Snapshot) ItemIndex() *Index {
	return s.itemIndex
}

// CountUsers returns the number of distinct users.
func (s *Snapshot) CountUsers() int {
	return int(s.userIndex.Len())
}

// CountItems returns the number of distinct items.
func (s *Snapshot) CountItems() int {
	return int(s.itemIndex.Len())
}
