// internal/skill/store.go
package skill

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"go-td-core/internal/config"
)

// ErrNoSave is returned by a Store that has nothing saved yet.
var ErrNoSave = errors.New("no saved skill progress")

// Snapshot is the persisted skill progress of one player.
type Snapshot struct {
	SkillPoints       int      `json:"skillPoints"`
	UnlockedSkillIDs  []string `json:"unlockedSkillIds"`
	LastSaveTimestamp int64    `json:"lastSaveTimestamp"` // unix milliseconds
}

// Store persists skill progress.
type Store interface {
	Load() (*Snapshot, error)
	Save(s *Snapshot) error
	Close() error
}

// OpenStore picks a backend by kind: "postgres" uses dsn, anything else a
// JSON file at path.
func OpenStore(kind, dsn, path, profileID string) (Store, error) {
	switch kind {
	case "postgres":
		return NewPostgresStore(dsn, profileID)
	case "memory":
		return NewMemoryStore(), nil
	}
	return NewFileStore(path), nil
}

// StoreFromEnv opens the store named by DB_TYPE. DATABASE_URL is the
// postgres DSN and DB_FILE the JSON save path.
func StoreFromEnv(profileID string) (Store, error) {
	kind := os.Getenv("DB_TYPE")
	dsn := os.Getenv("DATABASE_URL")
	if kind == "postgres" && dsn == "" {
		dsn = "host=localhost user=td password=td dbname=td sslmode=disable"
	}
	file := os.Getenv("DB_FILE")
	if file == "" {
		file = config.SkillSaveFile
	}
	if profileID == "" {
		profileID = config.DefaultProfileID
	}
	store, err := OpenStore(kind, dsn, file, profileID)
	if err != nil {
		return nil, fmt.Errorf("open %s skill store: %w", kind, err)
	}
	log.Printf("SkillStore: using %T", store)
	return store, nil
}

// FileStore keeps the snapshot in a JSON file. Writes go through a temp file
// and a rename so a crash never leaves a half-written save.
type FileStore struct {
	path  string
	mutex sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (fs *FileStore) Path() string { return fs.path }

func (fs *FileStore) Load() (*Snapshot, error) {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	data, err := os.ReadFile(fs.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoSave
		}
		return nil, fmt.Errorf("failed to read skill save %s: %w", fs.path, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse skill save %s: %w", fs.path, err)
	}
	return &snap, nil
}

func (fs *FileStore) Save(s *Snapshot) error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode skill save: %w", err)
	}

	dir := filepath.Dir(fs.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(fs.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create temp save in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write skill save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write skill save: %w", err)
	}
	if err := os.Rename(tmpName, fs.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace skill save %s: %w", fs.path, err)
	}
	return nil
}

func (fs *FileStore) Close() error { return nil }

// MemoryStore keeps the last snapshot in memory. Used by tests and headless runs.
type MemoryStore struct {
	mutex sync.Mutex
	snap  *Snapshot
	saves int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (ms *MemoryStore) Load() (*Snapshot, error) {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	if ms.snap == nil {
		return nil, ErrNoSave
	}
	return cloneSnapshot(ms.snap), nil
}

func (ms *MemoryStore) Save(s *Snapshot) error {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	ms.snap = cloneSnapshot(s)
	ms.saves++
	return nil
}

func (ms *MemoryStore) Close() error { return nil }

// Saves counts how many times Save was called.
func (ms *MemoryStore) Saves() int {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	return ms.saves
}

func cloneSnapshot(s *Snapshot) *Snapshot {
	c := *s
	c.UnlockedSkillIDs = append([]string(nil), s.UnlockedSkillIDs...)
	return &c
}
