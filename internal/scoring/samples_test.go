package scoring

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkinsense/symptom-engine/pkg/tremor"
)

func writeTremorJSON(t *testing.T, path string, samples []tremor.Sample) {
	t.Helper()
	data, err := json.Marshal(tremorSampleFile{Samples: samples})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func TestLoadTremorSamplesJSONDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.json")
	want := []tremor.Sample{
		{Magnitude: 9.81, ElapsedMs: 0},
		{Magnitude: 10.4, ElapsedMs: 10},
	}
	writeTremorJSON(t, path, want)

	got, err := LoadTremorSamples(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadTremorSamplesJSONBareArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.json")
	want := []tremor.Sample{
		{Magnitude: 9.81, ElapsedMs: 0},
		{Magnitude: 9.2, ElapsedMs: 10},
	}
	data, err := json.Marshal(want)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	got, err := LoadTremorSamples(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadTremorSamplesCSV(t *testing.T) {
	t.Run("with header", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "capture.csv")
		content := "magnitude,elapsed_ms\n9.81,0\n10.4,10\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		got, err := LoadTremorSamples(path)
		require.NoError(t, err)
		assert.Equal(t, []tremor.Sample{
			{Magnitude: 9.81, ElapsedMs: 0},
			{Magnitude: 10.4, ElapsedMs: 10},
		}, got)
	})

	t.Run("without header", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "capture.csv")
		require.NoError(t, os.WriteFile(path, []byte("9.81,0\n10.4,10\n"), 0644))

		got, err := LoadTremorSamples(path)
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, tremor.Sample{Magnitude: 10.4, ElapsedMs: 10}, got[1])
	})
}

func TestLoadTremorSamplesCSVErrors(t *testing.T) {
	t.Run("bad magnitude", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "capture.csv")
		require.NoError(t, os.WriteFile(path, []byte("9.81,0\nzap,10\n"), 0644))

		_, err := LoadTremorSamples(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid magnitude")
	})

	t.Run("bad elapsed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "capture.csv")
		require.NoError(t, os.WriteFile(path, []byte("magnitude,elapsed_ms\n9.81,soon\n"), 0644))

		_, err := LoadTremorSamples(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid elapsed_ms")
	})

	t.Run("missing column", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "capture.csv")
		require.NoError(t, os.WriteFile(path, []byte("9.81\n"), 0644))

		_, err := LoadTremorSamples(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected magnitude,elapsed_ms")
	})
}

func TestLoadTremorSamplesBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadTremorSamples(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse JSON samples")
}

func TestLoadTremorSamplesUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.txt")
	require.NoError(t, os.WriteFile(path, []byte("9.81,0"), 0644))

	_, err := LoadTremorSamples(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported sample file format")
}

func TestLoadTremorSamplesMissingFile(t *testing.T) {
	_, err := LoadTremorSamples(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read sample file")
}
