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
	"archive/zip"
	"encoding/csv"
	"io"
	"net/http"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"github.com/juju/errors"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/broom-io/broom/base"
	"github.com/broom-io/broom/base/log"
)

var (
	tempDir    string
	datasetDir string
)

func init() {
	usr, err := user.Current()
	if err != nil {
		log.Logger().Fatal("failed to get user directory", zap.Error(err))
	}
	datasetDir = filepath.Join(usr.HomeDir, ".broom", "dataset")
	tempDir = filepath.Join(usr.HomeDir, ".broom", "temp")
}

// Movie is a catalog entry from the MovieLens movies file. The display title
// usually carries the release year, e.g. "Legally Blonde (2001)".
type Movie struct {
	Id     string
	Title  string
	Genres []string
}

type builtInSet struct {
	url     string
	ratings string
	movies  string
}

// Built-in datasets: https://grouplens.org/datasets/movielens/
var builtInSets = map[string]builtInSet{
	"ml-latest-small": {
		url:     "https://files.grouplens.org/datasets/movielens/ml-latest-small.zip",
		ratings: "ml-latest-small/ratings.csv",
		movies:  "ml-latest-small/movies.csv",
	},
	"ml-25m": {
		url:     "https://files.grouplens.org/datasets/movielens/ml-25m.zip",
		ratings: "ml-25m/ratings.csv",
		movies:  "ml-25m/movies.csv",
	},
}

// LoadBuiltIn downloads (once, cached under ~/.broom/dataset) and loads a
// named built-in dataset.
func LoadBuiltIn(name string) ([]Observation, []Movie, error) {
	set, exist := builtInSets[name]
	if !exist {
		return nil, nil, errors.NotFoundf("built-in dataset %v", name)
	}
	if err := downloadAndUnzip(name, set.url); err != nil {
		return nil, nil, errors.Trace(err)
	}
	observations, err := LoadRatings(filepath.Join(datasetDir, set.ratings))
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	movies, err := LoadMovies(filepath.Join(datasetDir, set.movies))
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	return observations, movies, nil
}

// LoadRatings reads a MovieLens ratings file with the header
// userId,movieId,rating,timestamp. The rating column is used as the
// interaction strength.
func LoadRatings(path string) ([]Observation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer file.Close()
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 4
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Trace(err)
	}
	if len(rows) == 0 {
		return nil, errors.NotValidf("empty ratings file %v", path)
	}
	observations := make([]Observation, 0, len(rows)-1)
	for _, row := range rows[1:] {
		strength, err := base.ParseFloat[float32](row[2])
		if err != nil {
			return nil, errors.Trace(err)
		}
		timestamp, err := base.ParseInt[int64](row[3])
		if err != nil {
			return nil, errors.Trace(err)
		}
		observations = append(observations, Observation{
			UserId:    row[0],
			ItemId:    row[1],
			Strength:  strength,
			Timestamp: time.Unix(timestamp, 0).UTC(),
		})
	}
	return observations, nil
}

// LoadMovies reads a MovieLens movies file with the header
// movieId,title,genres. Genres are pipe separated; "(no genres listed)"
// yields no genres.
func LoadMovies(path string) ([]Movie, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer file.Close()
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 3
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Trace(err)
	}
	if len(rows) == 0 {
		return nil, errors.NotValidf("empty movies file %v", path)
	}
	movies := make([]Movie, 0, len(rows)-1)
	for _, row := range rows[1:] {
		movie := Movie{Id: row[0], Title: row[1]}
		if row[2] != "" && row[2] != "(no genres listed)" {
			movie.Genres = strings.Split(row[2], "|")
		}
		movies = append(movies, movie)
	}
	return movies, nil
}

func downloadAndUnzip(name, url string) error {
	path := filepath.Join(datasetDir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		zipFileName, err := downloadFromUrl(url, tempDir)
		if err != nil {
			return errors.Trace(err)
		}
		if _, err := unzip(zipFileName, datasetDir); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

// downloadFromUrl downloads file from URL.
func downloadFromUrl(src, dst string) (string, error) {
	log.Logger().Info("download dataset", zap.String("source", src), zap.String("destination", dst))
	// Extract file name
	tokens := strings.Split(src, "/")
	fileName := filepath.Join(dst, tokens[len(tokens)-1])
	// Create file
	if err := os.MkdirAll(filepath.Dir(fileName), os.ModePerm); err != nil {
		return fileName, errors.Trace(err)
	}
	output, err := os.Create(fileName)
	if err != nil {
		log.Logger().Error("failed to create file", zap.Error(err), zap.String("filename", fileName))
		return fileName, errors.Trace(err)
	}
	defer output.Close()
	// Download file
	response, err := http.Get(src)
	if err != nil {
		log.Logger().Error("failed to download", zap.Error(err), zap.String("source", src))
		return fileName, errors.Trace(err)
	}
	defer response.Body.Close()
	// Save file
	bar := progressbar.DefaultBytes(response.ContentLength, "download "+filepath.Base(fileName))
	_, err = io.Copy(io.MultiWriter(output, bar), response.Body)
	if err != nil {
		log.Logger().Error("failed to download", zap.Error(err), zap.String("source", src))
		return fileName, errors.Trace(err)
	}
	return fileName, nil
}

// unzip zip file.
func unzip(src, dst string) ([]string, error) {
	var fileNames []string
	// Open zip file
	r, err := zip.OpenReader(src)
	if err != nil {
		return fileNames, errors.Trace(err)
	}
	defer r.Close()
	// Extract files
	for _, f := range r.File {
		// Open file
		rc, err := f.Open()
		if err != nil {
			return fileNames, errors.Trace(err)
		}
		// Store filename/path for returning and using later on
		filePath := filepath.Join(dst, f.Name)
		// Check for ZipSlip. More Info: http://bit.ly/2MsjAWE
		if !strings.HasPrefix(filePath, filepath.Clean(dst)+string(os.PathSeparator)) {
			return fileNames, errors.NotValidf("illegal file path %v", filePath)
		}
		// Add filename
		fileNames = append(fileNames, filePath)
		if f.FileInfo().IsDir() {
			// Create folder
			if err = os.MkdirAll(filePath, os.ModePerm); err != nil {
				return fileNames, errors.Trace(err)
			}
		} else {
			// Create all folders
			if err = os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
				return fileNames, errors.Trace(err)
			}
			// Create file
			outFile, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
			if err != nil {
				return fileNames, errors.Trace(err)
			}
			// Save file
			_, err = io.Copy(outFile, rc)
			if err != nil {
				return nil, errors.Trace(err)
			}
			// Close the file without defer to close before next iteration of loop
			err = outFile.Close()
			if err != nil {
				return nil, errors.Trace(err)
			}
		}
		// Close file
		err = rc.Close()
		if err != nil {
			return nil, errors.Trace(err)
		}
	}
	return fileNames, nil
}
