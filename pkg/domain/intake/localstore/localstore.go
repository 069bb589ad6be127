// Package localstore keeps finished conversations on the machine that
// ran them. Submissions survive even when the backend is unreachable,
// so nothing a visitor typed is ever lost.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// FileName is the store file created under the configured directory.
const FileName = "consultation_responses.json"

// Entry is one completed conversation.
type Entry struct {
	// Id is assigned at append time and unique within the store.
	Id string `json:"id"`

	// Timestamp records when the conversation finished.
	Timestamp time.Time `json:"timestamp"`

	// Data holds the accepted answers, keyed by script field.
	Data map[string]string `json:"data"`
}

type Store struct {
	path string
	now  func() time.Time
}

// New opens (or lazily creates) the store under dir.
func New(dir string) *Store {
	return &Store{path: filepath.Join(dir, FileName), now: time.Now}
}

// Append stores a finished conversation and returns it with its id.
func (s *Store) Append(data map[string]string) (Entry, error) {
	entries, err := s.load()
	if err != nil {
		return Entry{}, err
	}

	now := s.now()
	id := fmt.Sprintf("%d", now.UnixNano())
	for s.hasId(entries, id) {
		now = now.Add(time.Nanosecond)
		id = fmt.Sprintf("%d", now.UnixNano())
	}
	entry := Entry{Id: id, Timestamp: now, Data: data}
	entries = append(entries, entry)

	if err := s.save(entries); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// List returns every stored conversation, newest first.
func (s *Store) List() ([]Entry, error) {
	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	return entries, nil
}

// Delete removes the entry with the given id. Unknown ids are not an
// error; the store just stays as it is.
func (s *Store) Delete(id string) error {
	entries, err := s.load()
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.Id != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return nil
	}
	return s.save(kept)
}

func (s *Store) hasId(entries []Entry, id string) bool {
	for _, e := range entries {
		if e.Id == id {
			return true
		}
	}
	return false
}

// load reads the store file. A missing or unreadable file yields an
// empty store rather than an error: the file is a cache of convenience,
// and a corrupt one must never block a new submission.
func (s *Store) load() ([]Entry, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, err
	}

	entries := []Entry{}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return []Entry{}, nil
	}
	return entries, nil
}

func (s *Store) save(entries []Entry) error {
	raw, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}
