// Package abbrev holds the crossword abbreviation dataset and the
// quiz session built on top of it.
package abbrev

import (
	"encoding/json"
	"fmt"
	"os"
)

// Entry pairs a meaning with its set of acceptable crossword-style
// abbreviations. The dataset is read-only at runtime.
type Entry struct {
	Meaning       string   `json:"meaning"`
	Abbreviations []string `json:"abbreviations"`
}

// Dataset is the full abbreviation collection served to clients and
// quizzed on.
type Dataset struct {
	Entries []Entry `json:"entries"`
}

// LoadDataset reads the parsed abbreviation JSON from disk.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read abbreviations file: %w", err)
	}

	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse abbreviations file: %w", err)
	}
	return &ds, nil
}

// Save writes the dataset as indented JSON.
func (ds *Dataset) Save(path string) error {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode abbreviations: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write abbreviations file: %w", err)
	}
	return nil
}
