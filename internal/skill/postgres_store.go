// internal/skill/postgres_store.go
package skill

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// PostgresStore keeps one snapshot row per profile.
type PostgresStore struct {
	db        *sql.DB
	profileID string
}

// NewPostgresStore connects, pings and creates the table if needed.
func NewPostgresStore(connectionString, profileID string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db, profileID: profileID}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (ps *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS skill_progress (
		profile_id TEXT PRIMARY KEY,
		skill_points INTEGER NOT NULL,
		unlocked_skill_ids TEXT[] NOT NULL,
		last_save_timestamp BIGINT NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`
	_, err := ps.db.Exec(schema)
	return err
}

func (ps *PostgresStore) Load() (*Snapshot, error) {
	query := `SELECT skill_points, unlocked_skill_ids, last_save_timestamp FROM skill_progress WHERE profile_id = $1`

	var snap Snapshot
	err := ps.db.QueryRow(query, ps.profileID).Scan(
		&snap.SkillPoints, pq.Array(&snap.UnlockedSkillIDs), &snap.LastSaveTimestamp,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoSave
		}
		return nil, fmt.Errorf("failed to load skill progress: %w", err)
	}
	return &snap, nil
}

func (ps *PostgresStore) Save(s *Snapshot) error {
	query := `
	INSERT INTO skill_progress (profile_id, skill_points, unlocked_skill_ids, last_save_timestamp)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (profile_id)
	DO UPDATE SET
		skill_points = $2, unlocked_skill_ids = $3, last_save_timestamp = $4,
		updated_at = NOW()
	`
	ids := s.UnlockedSkillIDs
	if ids == nil {
		ids = []string{}
	}
	if _, err := ps.db.Exec(query, ps.profileID, s.SkillPoints, pq.Array(ids), s.LastSaveTimestamp); err != nil {
		return fmt.Errorf("failed to save skill progress: %w", err)
	}
	return nil
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
