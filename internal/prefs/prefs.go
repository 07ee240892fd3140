package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const fileName = "prefs.json"

type prefsFile struct {
	LastCityID int `json:"last_city_id,omitempty"`
}

// Store persists small user preferences as a JSON file.
type Store struct {
	path string

	mu   sync.Mutex
	subs map[chan int]struct{}
}

// Open returns a store backed by path. An empty path uses
// <UserConfigDir>/jaskweather/prefs.json.
func Open(path string) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir prefs dir: %w", err)
	}
	return &Store{path: path, subs: make(map[chan int]struct{})}, nil
}

func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "jaskweather", fileName), nil
}

// LastCityID returns the last searched city, or 0 when none is stored.
func (s *Store) LastCityID() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pf, err := s.load()
	return pf.LastCityID, err
}

// SetLastCityID stores id and notifies observers when it changed. Zero
// clears the selection.
func (s *Store) SetLastCityID(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pf, err := s.load()
	if err != nil {
		return err
	}
	if pf.LastCityID == id {
		return nil
	}
	pf.LastCityID = id
	if err := s.save(pf); err != nil {
		return err
	}
	for ch := range s.subs {
		replace(ch, id)
	}
	return nil
}

// Observe emits the current city id, then every change. A slow reader only
// sees the latest value. The channel closes when ctx ends.
func (s *Store) Observe(ctx context.Context) <-chan int {
	box := make(chan int, 1)
	out := make(chan int)

	s.mu.Lock()
	pf, err := s.load()
	if err != nil {
		log.Printf("prefs: observe %s: %v (treating as no city)", s.path, err)
		pf = prefsFile{}
	}
	box <- pf.LastCityID
	s.subs[box] = struct{}{}
	s.mu.Unlock()

	go func() {
		defer close(out)
		defer func() {
			s.mu.Lock()
			delete(s.subs, box)
			s.mu.Unlock()
		}()
		last := -1
		for {
			select {
			case id := <-box:
				if id == last {
					continue
				}
				select {
				case out <- id:
					last = id
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (s *Store) load() (prefsFile, error) {
	var pf prefsFile
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return prefsFile{}, nil
		}
		return pf, err
	}
	if err := json.Unmarshal(data, &pf); err != nil {
		return prefsFile{}, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return pf, nil
}

func (s *Store) save(pf prefsFile) error {
	data, err := json.MarshalIndent(pf, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// replace swaps whatever is buffered in ch for v.
func replace(ch chan int, v int) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
