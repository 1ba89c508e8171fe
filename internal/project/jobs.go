package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/piwi3910/ShaperCut/internal/model"
)

// DefaultJobsDir returns the directory saved jobs live in: ~/.shapercut/jobs.
func DefaultJobsDir() string {
	return filepath.Join(DefaultConfigDir(), "jobs")
}

// SaveJob writes a job to path as JSON.
func SaveJob(path string, job model.Job) error {
	return writeJSON(path, job)
}

// LoadJob reads a job from path and checks its data with CheckJob. Values
// that fail the check are dropped from the job and returned as problems;
// only an unreadable file is an error.
func LoadJob(path string) (model.Job, []error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Job{}, nil, err
	}
	var job model.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return model.Job{}, nil, fmt.Errorf("failed to parse job %s: %w", path, err)
	}
	return job, CheckJob(&job), nil
}

// ListJobs returns the paths of the saved jobs in dir, sorted by name.
// A missing directory yields an empty list.
func ListJobs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}
	paths := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
