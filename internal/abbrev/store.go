package abbrev

import (
	"encoding/json"
	"os"
)

// MemoryStore keeps history in memory. Used by tests and callers that
// don't need persistence.
type MemoryStore struct {
	history []bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() ([]bool, error) {
	return append([]bool(nil), m.history...), nil
}

func (m *MemoryStore) Save(history []bool) error {
	m.history = append([]bool(nil), history...)
	return nil
}

// FileStore persists history as a small JSON file, the terminal
// equivalent of the web client's local storage.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

type fileHistory struct {
	History []bool `json:"history"`
}

func (f *FileStore) Load() ([]bool, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var h fileHistory
	if err := json.Unmarshal(data, &h); err != nil {
		// A corrupt history file resets the score rather than
		// blocking the quiz.
		return nil, nil
	}
	return h.History, nil
}

func (f *FileStore) Save(history []bool) error {
	data, err := json.Marshal(fileHistory{History: history})
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0644)
}
