package scoring

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/parkinsense/symptom-engine/pkg/tremor"
)

// tremorSampleFile is the JSON document shape for motion captures. A
// bare top-level array of samples is also accepted.
type tremorSampleFile struct {
	Samples []tremor.Sample `json:"samples"`
}

// LoadTremorSamples reads a motion capture from disk. JSON files hold
// either {"samples": [...]} or a bare array; CSV files hold
// magnitude,elapsed_ms rows with an optional header.
func LoadTremorSamples(path string) ([]tremor.Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sample file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return parseTremorJSON(data)
	case ".csv":
		return parseTremorCSV(data)
	default:
		return nil, fmt.Errorf("unsupported sample file format %q (use .json or .csv)", filepath.Ext(path))
	}
}

func parseTremorJSON(data []byte) ([]tremor.Sample, error) {
	var doc tremorSampleFile
	if err := json.Unmarshal(data, &doc); err == nil && doc.Samples != nil {
		return doc.Samples, nil
	}

	var samples []tremor.Sample
	if err := json.Unmarshal(data, &samples); err != nil {
		return nil, fmt.Errorf("failed to parse JSON samples: %w", err)
	}
	return samples, nil
}

func parseTremorCSV(data []byte) ([]tremor.Sample, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV samples: %w", err)
	}

	samples := make([]tremor.Sample, 0, len(records))
	for i, record := range records {
		if len(record) < 2 {
			return nil, fmt.Errorf("row %d: expected magnitude,elapsed_ms columns", i+1)
		}

		magnitude, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			if i == 0 {
				// header row
				continue
			}
			return nil, fmt.Errorf("row %d: invalid magnitude %q", i+1, record[0])
		}

		elapsed, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid elapsed_ms %q", i+1, record[1])
		}

		samples = append(samples, tremor.Sample{Magnitude: magnitude, ElapsedMs: elapsed})
	}

	return samples, nil
}
