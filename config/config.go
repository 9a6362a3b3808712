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
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/juju/errors"
	"github.com/spf13/viper"
)

// Config is the configuration for the broom command line.
type Config struct {
	Dataset   DatasetConfig   `mapstructure:"dataset"`
	Recommend RecommendConfig `mapstructure:"recommend"`
}

type DatasetConfig struct {
	// Name selects a built-in dataset, downloaded on first use. Ignored when
	// both paths are set.
	Name        string `mapstructure:"name"`
	RatingsPath string `mapstructure:"ratings_path"`
	MoviesPath  string `mapstructure:"movies_path"`
}

type RecommendConfig struct {
	NumSimilar    int     `mapstructure:"num_similar" validate:"gt=0"`
	MinConfidence float32 `mapstructure:"min_confidence" validate:"gte=0,lte=1"`
}

func GetDefaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Name: "ml-latest-small",
		},
		Recommend: RecommendConfig{
			NumSimilar:    10,
			MinConfidence: 0.5,
		},
	}
}

func setDefault() {
	defaultConfig := GetDefaultConfig()
	viper.SetDefault("dataset.name", defaultConfig.Dataset.Name)
	viper.SetDefault("recommend.num_similar", defaultConfig.Recommend.NumSimilar)
	viper.SetDefault("recommend.min_confidence", defaultConfig.Recommend.MinConfidence)
}

// LoadConfig loads the configuration from a TOML file. An empty path loads
// defaults overridden only by BROOM_* environment variables.
func LoadConfig(path string) (*Config, error) {
	viper.Reset()
	setDefault()
	viper.SetEnvPrefix("broom")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return nil, errors.Trace(err)
		}
	}
	var conf Config
	if err := viper.Unmarshal(&conf); err != nil {
		return nil, errors.Trace(err)
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &conf, nil
}

// Validate checks field constraints and that a dataset source is set.
func (config *Config) Validate() error {
	if err := validator.New().Struct(config); err != nil {
		return errors.NotValidf("config: %v", err)
	}
	if config.Dataset.Name == "" &&
		(config.Dataset.RatingsPath == "" || config.Dataset.MoviesPath == "") {
		return errors.NotValidf("config: either dataset.name or both dataset paths")
	}
	return nil
}
