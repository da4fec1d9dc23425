// Package storage keeps the serving layer's classification audit log in
// SQLite. The core pipeline owns no durable state; this log belongs to the
// boundary that calls it and records outcomes for metrics and review.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const DefaultDBFile = "vocalguard.sqlite3"

// ClassificationRecord is one served request's outcome. ErrorKind is empty
// for successful classifications.
type ClassificationRecord struct {
	ID         string `gorm:"primaryKey;type:varchar(36)"`
	Language   string `gorm:"index:idx_language"`
	Label      string `gorm:"index:idx_label"`
	Confidence float64
	Degraded   bool
	LatencyMs  int64
	ErrorKind  string `gorm:"index:idx_error_kind"`
	CreatedAt  time.Time
}

// Stats aggregates the audit log for the metrics endpoint.
type Stats struct {
	Total        int64
	ByLabel      map[string]int64
	Errors       int64
	Degraded     int64
	AvgLatencyMs float64
}

// AuditLog is the SQLite-backed audit store.
type AuditLog struct {
	gdb *gorm.DB
	db  *sql.DB
}

// NewAuditLog opens (creating if needed) the audit database at path.
func NewAuditLog(path string) (*AuditLog, error) {
	if path == "" {
		path = DefaultDBFile
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating audit db dir: %w", err)
		}
	}

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening audit db: %w", err)
	}

	if err := gdb.AutoMigrate(&ClassificationRecord{}); err != nil {
		return nil, fmt.Errorf("migrating audit db: %w", err)
	}

	db, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql db handle: %w", err)
	}

	return &AuditLog{gdb: gdb, db: db}, nil
}

// Record stores one outcome, assigning the record ID when unset.
func (a *AuditLog) Record(rec ClassificationRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if err := a.gdb.Create(&rec).Error; err != nil {
		return fmt.Errorf("recording classification: %w", err)
	}
	return nil
}

// Stats aggregates the stored records.
func (a *AuditLog) Stats() (*Stats, error) {
	stats := &Stats{ByLabel: make(map[string]int64)}

	if err := a.gdb.Model(&ClassificationRecord{}).Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("counting records: %w", err)
	}

	type labelCount struct {
		Label string
		N     int64
	}
	var labels []labelCount
	err := a.gdb.Model(&ClassificationRecord{}).
		Select("label, count(*) as n").
		Where("error_kind = ''").
		Group("label").
		Scan(&labels).Error
	if err != nil {
		return nil, fmt.Errorf("aggregating labels: %w", err)
	}
	for _, lc := range labels {
		stats.ByLabel[lc.Label] = lc.N
	}

	if err := a.gdb.Model(&ClassificationRecord{}).
		Where("error_kind <> ''").
		Count(&stats.Errors).Error; err != nil {
		return nil, fmt.Errorf("counting errors: %w", err)
	}

	if err := a.gdb.Model(&ClassificationRecord{}).
		Where("degraded = ?", true).
		Count(&stats.Degraded).Error; err != nil {
		return nil, fmt.Errorf("counting degraded: %w", err)
	}

	var avg sql.NullFloat64
	if err := a.gdb.Model(&ClassificationRecord{}).
		Select("avg(latency_ms)").
		Scan(&avg).Error; err != nil {
		return nil, fmt.Errorf("averaging latency: %w", err)
	}
	if avg.Valid {
		stats.AvgLatencyMs = avg.Float64
	}

	return stats, nil
}

// Close releases the underlying database handle.
func (a *AuditLog) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
