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

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/broom-io/broom/base/log"
	"github.com/broom-io/broom/cmd/version"
	"github.com/broom-io/broom/config"
	"github.com/broom-io/broom/dataset"
	"github.com/broom-io/broom/search"
)

var rootCommand = &cobra.Command{
	Use:   "broom",
	Short: "Implicit feedback dataset tools for movie recommendation.",
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion, _ := cmd.PersistentFlags().GetBool("version"); showVersion {
			fmt.Println(version.BuildInfo())
			return
		}
		_ = cmd.Help()
	},
}

var statsCommand = &cobra.Command{
	Use:   "stats",
	Short: "Build the interaction matrix and show dataset statistics.",
	Run: func(cmd *cobra.Command, args []string) {
		conf := loadSetup(cmd)
		observations, movies := loadData(conf)
		snapshot, err := dataset.Build(observations)
		if err != nil {
			log.Logger().Fatal("failed to build snapshot", zap.Error(err))
		}
		interactions := snapshot.ItemMajor()
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Statistic", "Value"})
		table.Append([]string{"users", strconv.Itoa(snapshot.CountUsers())})
		table.Append([]string{"items", strconv.Itoa(snapshot.CountItems())})
		table.Append([]string{"movies in catalog", strconv.Itoa(len(movies))})
		table.Append([]string{"observations", strconv.Itoa(len(observations))})
		table.Append([]string{"stored cells", strconv.Itoa(interactions.NNZ())})
		table.Append([]string{"sparsity", fmt.Sprintf("%.4f", interactions.Sparsity())})
		table.Append([]string{"mean strength", fmt.Sprintf("%.4f", interactions.MeanStrength())})
		table.Render()
	},
}

var searchCommand = &cobra.Command{
	Use:   "search QUERY",
	Short: "Resolve a free-text title against the movie catalog.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		conf := loadSetup(cmd)
		_, movies := loadData(conf)
		catalog := make([]search.Entry, len(movies))
		for i, movie := range movies {
			catalog[i] = search.Entry{Id: movie.Id, Name: movie.Title}
		}
		matches, err := search.Rank(args[0], catalog, conf.Recommend.NumSimilar)
		if err != nil {
			log.Logger().Fatal("failed to search catalog", zap.Error(err))
		}
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ID", "Title", "Score"})
		for _, match := range matches {
			table.Append([]string{match.Id, match.Name, fmt.Sprintf("%.2f", match.Score)})
		}
		table.Render()
		if matches[0].Score < conf.Recommend.MinConfidence {
			log.Logger().Warn("best match is below the confidence threshold",
				zap.Float32("score", matches[0].Score),
				zap.Float32("min_confidence", conf.Recommend.MinConfidence))
		}
	},
}

func loadSetup(cmd *cobra.Command) *config.Config {
	debug, _ := cmd.Flags().GetBool("debug")
	log.SetLogger(cmd.Flags(), debug)
	configPath, _ := cmd.Flags().GetString("config")
	conf, err := config.LoadConfig(configPath)
	if err != nil {
		log.Logger().Fatal("failed to load config", zap.Error(err))
	}
	return conf
}

func loadData(conf *config.Config) ([]dataset.Observation, []dataset.Movie) {
	if conf.Dataset.RatingsPath != "" && conf.Dataset.MoviesPath != "" {
		observations, err := dataset.LoadRatings(conf.Dataset.RatingsPath)
		if err != nil {
			log.Logger().Fatal("failed to load ratings", zap.Error(err))
		}
		movies, err := dataset.LoadMovies(conf.Dataset.MoviesPath)
		if err != nil {
			log.Logger().Fatal("failed to load movies", zap.Error(err))
		}
		return observations, movies
	}
	observations, movies, err := dataset.LoadBuiltIn(conf.Dataset.Name)
	if err != nil {
		log.Logger().Fatal("failed to load built-in dataset", zap.Error(err))
	}
	return observations, movies
}

func init() {
	rootCommand.PersistentFlags().Bool("version", false, "broom version")
	rootCommand.PersistentFlags().BoolP("debug", "d", false, "use debug log mode")
	rootCommand.PersistentFlags().StringP("config", "c", "", "configuration file path")
	log.AddFlags(rootCommand.PersistentFlags())
	rootCommand.AddCommand(statsCommand, searchCommand)
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		log.Logger().Fatal("failed to execute command", zap.Error(err))
	}
}
