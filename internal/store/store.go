// Package store persists application state in BoltDB: one progress
// record per video id, one key for the persisted app-state subset, and
// per-video notes. Values are JSON. A small in-memory cache promotes
// hot keys on access. With no path the store runs memory-only, which is
// also the degradation mode when the database cannot be opened.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"ntsync/internal/domain"
)

// Bucket names
var (
	bucketProgress = []byte("progress")
	bucketState    = []byte("state")
	bucketNotes    = []byte("notes")
)

// stateKey is the single key holding the persisted app-state subset.
const stateKey = "app"

// Store implements domain.ProgressStore and domain.StateStore over BoltDB.
type Store struct {
	db *bolt.DB
	mu sync.RWMutex // protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// Open opens (or creates) the database at dir/ntsync.db. An empty dir
// yields a memory-only store with no persistence.
func Open(dir string) (*Store, error) {
	if dir == "" {
		return &Store{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "ntsync.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketProgress, bucketState, bucketNotes} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, cache: make(map[string][]byte)}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *Store) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	// Read from BoltDB
	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *Store) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	// Update memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

func (s *Store) delete(bucket []byte, key string) error {
	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	delete(s.cache, cacheKey)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b != nil {
			return b.Delete([]byte(key))
		}
		return nil
	})
}

// === Progress (domain.ProgressStore) ===

func (s *Store) GetProgress(videoID string) (domain.ProgressRecord, bool) {
	var rec domain.ProgressRecord
	ok := s.get(bucketProgress, videoID, &rec)
	return rec, ok
}

func (s *Store) SaveProgress(rec domain.ProgressRecord) error {
	return s.set(bucketProgress, rec.VideoID, rec)
}

func (s *Store) DeleteProgress(videoID string) error {
	return s.delete(bucketProgress, videoID)
}

// ListProgress returns every stored progress record. Memory-only mode
// scans the cache instead.
func (s *Store) ListProgress() ([]domain.ProgressRecord, error) {
	if s.db == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		prefix := string(bucketProgress) + ":"
		var out []domain.ProgressRecord
		for k, data := range s.cache {
			if strings.HasPrefix(k, prefix) {
				var rec domain.ProgressRecord
				if json.Unmarshal(data, &rec) == nil {
					out = append(out, rec)
				}
			}
		}
		return out, nil
	}

	var out []domain.ProgressRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketProgress)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var rec domain.ProgressRecord
			if err := json.Unmarshal(v, &rec); err == nil {
				out = append(out, rec)
			}
			return nil
		})
	})
	return out, err
}

// === App state (domain.StateStore) ===

func (s *Store) GetState() (domain.PersistedState, bool) {
	var state domain.PersistedState
	ok := s.get(bucketState, stateKey, &state)
	return state, ok
}

func (s *Store) SaveState(state domain.PersistedState) error {
	return s.set(bucketState, stateKey, state)
}

// === Notes ===

func (s *Store) GetNotes(videoID string) ([]domain.VideoNote, bool) {
	var notes []domain.VideoNote
	ok := s.get(bucketNotes, videoID, &notes)
	return notes, ok
}

func (s *Store) SaveNotes(videoID string, notes []domain.VideoNote) error {
	return s.set(bucketNotes, videoID, notes)
}

func (s *Store) DeleteNotes(videoID string) {
	s.delete(bucketNotes, videoID)
}
