package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// StateVersion is the current version of the state file format.
const StateVersion = 1

// RangeSet contains named range definitions saved for reuse.
type RangeSet struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the set was last saved.
	SavedAt time.Time `json:"saved_at"`

	// Ranges holds the saved definitions, in insertion order.
	Ranges []RangeDef `json:"ranges,omitempty"`
}

// RangeDef describes a range by its raw parts so it can be rebuilt later.
type RangeDef struct {
	// Name is the unique name the definition was saved under.
	Name string `json:"name"`

	// Start is the first instant of the range.
	Start time.Time `json:"start"`

	// End is the last instant of the range.
	End time.Time `json:"end"`

	// Step is the fixed increment between produced instants.
	Step time.Duration `json:"step"`

	// SavedAt is when this definition was saved.
	SavedAt time.Time `json:"saved_at,omitempty"`
}

// Put adds or replaces the definition with r's name.
func (s *RangeSet) Put(r RangeDef) {
	for i := range s.Ranges {
		if s.Ranges[i].Name == r.Name {
			s.Ranges[i] = r
			return
		}
	}
	s.Ranges = append(s.Ranges, r)
}

// Get returns the definition saved under name.
func (s *RangeSet) Get(name string) (RangeDef, bool) {
	for _, r := range s.Ranges {
		if r.Name == name {
			return r, true
		}
	}
	return RangeDef{}, false
}

// Remove deletes the definition saved under name. It reports whether the
// name was present.
func (s *RangeSet) Remove(name string) bool {
	for i := range s.Ranges {
		if s.Ranges[i].Name == name {
			s.Ranges = append(s.Ranges[:i], s.Ranges[i+1:]...)
			return true
		}
	}
	return false
}

// Names returns the saved definition names, sorted.
func (s *RangeSet) Names() []string {
	names := make([]string, 0, len(s.Ranges))
	for _, r := range s.Ranges {
		names = append(names, r.Name)
	}
	sort.Strings(names)
	return names
}

// RangeSetStore manages persistence of saved ranges to a JSON file.
type RangeSetStore struct {
	mu   sync.Mutex
	path string
}

// NewRangeSetStore creates a new range set store.
func NewRangeSetStore(path string) *RangeSetStore {
	return &RangeSetStore{path: path}
}

// Save persists the range set to disk.
func (s *RangeSetStore) Save(set *RangeSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	set.Version = StateVersion
	set.SavedAt = time.Now()

	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Load reads the range set from disk.
// Returns nil, nil if the file doesn't exist (empty set).
func (s *RangeSetStore) Load() (*RangeSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	set := &RangeSet{}
	if err := json.Unmarshal(data, set); err != nil {
		return nil, err
	}

	return set, nil
}

// Clear removes the state file.
func (s *RangeSetStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
