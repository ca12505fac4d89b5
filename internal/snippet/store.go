// Package snippet holds the name→source table of code snippets the
// assistant can recite, loaded from a JSON file at startup.
package snippet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

// Entry is one named snippet.
type Entry struct {
	Name   string
	Source string
}

// Store is the snippet table. Lookups iterate entries in the order the JSON
// file declares them; the first name contained in the utterance wins, with
// no specificity tie-breaking. Reload swaps the whole table atomically.
type Store struct {
	path string

	mu      sync.RWMutex
	entries []Entry
}

// Empty returns a Store with no entries, bound to path for later reloads.
func Empty(path string) *Store {
	return &Store{path: path}
}

// Load reads the snippet file and returns a Store bound to that path.
func Load(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the snippet file and replaces the table.
func (s *Store) Reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("snippet: read %s: %w", s.path, err)
	}

	entries, err := parseOrdered(data)
	if err != nil {
		return fmt.Errorf("snippet: parse %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	return nil
}

// Lookup returns the first entry whose name is contained in the utterance,
// case-insensitively.
func (s *Store) Lookup(message string) (Entry, bool) {
	msg := strings.ToLower(message)

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if strings.Contains(msg, strings.ToLower(e.Name)) {
			return e, true
		}
	}
	return Entry{}, false
}

// Len returns the number of loaded snippets.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Names returns the snippet names in declaration order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.Name
	}
	return names
}

// parseOrdered decodes a flat JSON object of string values, preserving the
// key order of the file. A plain map would shuffle keys and break the
// documented first-match policy.
func parseOrdered(data []byte) ([]Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected top-level object, got %v", tok)
	}

	var entries []Entry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %v", keyTok)
		}

		var source string
		if err := dec.Decode(&source); err != nil {
			return nil, fmt.Errorf("value for %q: %w", name, err)
		}
		entries = append(entries, Entry{Name: name, Source: source})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return entries, nil
}
