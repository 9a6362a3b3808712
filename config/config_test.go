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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	conf, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "ml-latest-small", conf.Dataset.Name)
	assert.Equal(t, 10, conf.Recommend.NumSimilar)
	assert.Equal(t, float32(0.5), conf.Recommend.MinConfidence)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[dataset]
ratings_path = "testdata/ratings.csv"
movies_path = "testdata/movies.csv"

[recommend]
num_similar = 5
min_confidence = 0.7
`), 0644))
	conf, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "testdata/ratings.csv", conf.Dataset.RatingsPath)
	assert.Equal(t, 5, conf.Recommend.NumSimilar)
	assert.Equal(t, float32(0.7), conf.Recommend.MinConfidence)
}

func TestConfigValidate(t *testing.T) {
	conf := GetDefaultConfig()
	assert.NoError(t, conf.Validate())

	conf.Recommend.NumSimilar = 0
	assert.True(t, errors.IsNotValid(conf.Validate()))

	conf = GetDefaultConfig()
	conf.Recommend.MinConfidence = 1.5
	assert.True(t, errors.IsNotValid(conf.Validate()))

	conf = GetDefaultConfig()
	conf.Dataset.Name = ""
	assert.True(t, errors.IsNotValid(conf.Validate()))
}
