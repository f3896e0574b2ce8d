package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/BoxPack/internal/model"
)

// SaveJob writes a job to path as indented JSON.
func SaveJob(path string, job model.Job) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create job directory: %w", err)
	}
	data, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadJob reads a job file. Missing settings fall back to the defaults and
// every box is validated.
func LoadJob(path string) (model.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Job{}, fmt.Errorf("failed to read job file: %w", err)
	}

	job := model.NewJob()
	if err := json.Unmarshal(data, &job); err != nil {
		return model.Job{}, fmt.Errorf("failed to parse job file: %w", err)
	}

	if job.Settings.Width == 0 {
		job.Settings.Width = model.DefaultSettings().Width
	}
	if job.Settings.Order == "" {
		job.Settings.Order = model.DefaultSettings().Order
	}
	if job.Settings.Engine == "" {
		job.Settings.Engine = model.DefaultSettings().Engine
	}
	if job.Boxes == nil {
		job.Boxes = []model.Box{}
	}

	for i, b := range job.Boxes {
		if err := b.Validate(); err != nil {
			return model.Job{}, fmt.Errorf("box %d in %s: %w", i+1, path, err)
		}
	}
	return job, nil
}
