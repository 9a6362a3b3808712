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
	"slices"

	"github.com/juju/errors"
)

// Index manages the map between sparse ids and dense indices. A sparse id is
// a raw user id or item id. The dense index is the internal row or column
// index optimized for faster parameter access and less memory usage.
//
// Indices are assigned by ascending order of the raw ids, so the mapping is a
// pure function of the id set and reproducible across runs regardless of
// observation order.
type Index struct {
	numbers map[string]int32 // sparse id -> dense index
	names   []string         // dense index -> sparse id
}

// NotId represents an id doesn't exist.
const NotId = int32(-1)

// NewIndex creates an Index over the distinct ids in names. The input is
// neither retained nor mutated.
func NewIndex(names []string) *Index {
	sorted := slices.Clone(names)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	idx := &Index{
		numbers: make(map[string]int32, len(sorted)),
		names:   sorted,
	}
	for i, name := range sorted {
		idx.numbers[name] = int32(i)
	}
	return idx
}

// Len returns the number of indexed ids.
func (idx *Index) Len() int32 {
	if idx == nil {
		return 0
	}
	return int32(len(idx.names))
}

// ToNumber converts a sparse id to a dense index. NotId is returned for
// unknown ids.
func (idx *Index) ToNumber(name string) int32 {
	if index, exist := idx.numbers[name]; exist {
		return index
	}
	return NotId
}

// ToName converts a dense index back to a sparse id.
func (idx *Index) ToName(index int32) (string, error) {
	if index < 0 || index >= idx.Len() {
		return "", errors.NotFoundf("index %d", index)
	}
	return idx.names[index], nil
}

// Names returns all ids in dense index order.
func (idx *Index) Names() []string {
	return slices.Clone(idx.names)
}
