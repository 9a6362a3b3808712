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

// Package dataset converts implicit feedback observations into an immutable
// sparse interaction matrix with bidirectional id/index mappers.
package dataset

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/juju/errors"
)

// Observation is a single implicit feedback record. Strength is an
// interaction weight, e.g. a watch count, and must be finite and
// non-negative.
type Observation struct {
	UserId    string
	ItemId    string
	Strength  float32
	Timestamp time.Time
}

func (o Observation) validate() error {
	if math32.IsNaN(o.Strength) || math32.IsInf(o.Strength, 0) {
		return errors.NotValidf("strength %v for user %v and item %v", o.Strength, o.UserId, o.ItemId)
	}
	if o.Strength < 0 {
		return errors.NotValidf("negative strength %v for user %v and item %v", o.Strength, o.UserId, o.ItemId)
	}
	return nil
}
