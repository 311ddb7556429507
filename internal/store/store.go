// Package store implements the persistence adapter for the request
// collection, backed by GORM over SQLite (pure Go driver).
//
// Persistence is whole-collection: the entire request list is serialized to
// a single JSON blob stored under one fixed key, mirroring the original
// single-slot local storage model. There is no schema version tag and no
// migration path; an unreadable or unparseable blob is indistinguishable
// from corruption and triggers the seed fallback.
package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/frotaops/go-fleet-backend/internal/domain"
)

// SnapshotKey is the fixed key under which the request collection is stored.
const SnapshotKey = "fleet_requests"

// Snapshot is the single-row key/value model holding the serialized
// request collection.
type Snapshot struct {
	Key       string    `gorm:"primaryKey;type:varchar(64)"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the database table name for Snapshot.
func (Snapshot) TableName() string { return "snapshots" }

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
// When traced is true, GORM queries are instrumented with OpenTelemetry.
func OpenSQLite(path string, traced bool) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool: the snapshot table sees one writer at a time, keep it small.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(5)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	}

	if traced {
		if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// AutoMigrate creates the snapshot table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Snapshot{})
}

// Store reads and writes the request collection snapshot.
type Store struct {
	DB *gorm.DB
}

// New constructs a Store bound to db.
func New(db *gorm.DB) *Store { return &Store{DB: db} }

// Load returns the persisted request collection. A missing row or an
// unparseable blob yields the seed dataset; both cases are logged and
// neither is surfaced as an error to the caller.
func (s *Store) Load(ctx context.Context) []domain.Request {
	var row Snapshot
	err := s.DB.WithContext(ctx).First(&row, "key = ?", SnapshotKey).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Warn().Err(err).Msg("snapshot read failed, using seed dataset")
		}
		return domain.SeedRequests()
	}

	var out []domain.Request
	if err := json.Unmarshal([]byte(row.Value), &out); err != nil {
		log.Warn().Err(err).Msg("snapshot unparseable, using seed dataset")
		return domain.SeedRequests()
	}
	normalize(out)
	return out
}

// normalize maps legacy Portuguese enum labels (persisted by earlier
// versions) back to the neutral tags. Unknown values are left as-is.
func normalize(records []domain.Request) {
	for i := range records {
		if s, ok := domain.ParseStatus(string(records[i].Status)); ok {
			records[i].Status = s
		}
		if t, ok := domain.ParseRequestType(string(records[i].RequestType)); ok {
			records[i].RequestType = t
		}
	}
}

// Save serializes the full collection and upserts it under the fixed key.
// On failure the prior persisted content is left untouched and the error is
// returned for the caller to log; in-memory state is never rolled back.
func (s *Store) Save(ctx context.Context, records []domain.Request) error {
	buf, err := json.Marshal(records)
	if err != nil {
		return err
	}
	row := Snapshot{Key: SnapshotKey, Value: string(buf)}
	return s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
}
