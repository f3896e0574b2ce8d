package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BoxPack/internal/model"
)

func TestSaveAndLoadJob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs", "shipment.json")

	job := model.NewJob()
	job.Name = "Shipment"
	job.Settings = model.Settings{Width: 15, Order: model.OrderBest, Engine: model.EngineGrid}
	job.Boxes = []model.Box{
		{ID: "a", Label: "Crate", Height: 10, Width: 10},
		{ID: "b", Label: "Tote", Height: 5, Width: 5},
	}
	job.Result = &model.PackResult{
		Width: 15,
		Depth: 10,
		Placements: []model.Placement{
			{Box: job.Boxes[0], X: 0, Y: 0},
			{Box: job.Boxes[1], X: 10, Y: 0},
		},
	}

	require.NoError(t, SaveJob(path, job))

	loaded, err := LoadJob(path)
	require.NoError(t, err)
	assert.Equal(t, job, loaded)
}

func TestLoadJob_FillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"bare","boxes":[{"label":"x","height":1,"width":2}]}`), 0644))

	job, err := LoadJob(path)
	require.NoError(t, err)

	assert.Equal(t, "bare", job.Name)
	assert.Equal(t, model.DefaultSettings(), job.Settings)
	require.Len(t, job.Boxes, 1)
	assert.Nil(t, job.Result)
}

func TestLoadJob_PartialSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"settings":{"width":30}}`), 0644))

	job, err := LoadJob(path)
	require.NoError(t, err)

	assert.Equal(t, 30, job.Settings.Width)
	assert.Equal(t, model.OrderDescending, job.Settings.Order)
	assert.NotNil(t, job.Boxes)
}

func TestLoadJob_InvalidBox(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"boxes":[{"label":"bad","height":0,"width":2}]}`), 0644))

	_, err := LoadJob(path)
	assert.True(t, errors.Is(err, model.ErrInvalidDimension), "got %v", err)
}

func TestLoadJob_Errors(t *testing.T) {
	_, err := LoadJob(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))
	_, err = LoadJob(path)
	assert.ErrorContains(t, err, "failed to parse job file")
}
