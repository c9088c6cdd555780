package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage journals execution reports and protocol messages to SQLite.
type Storage struct {
	db *gorm.DB
}

// NewStorage opens (or creates) the journal database at path.
func NewStorage(path string) (*Storage, error) {
	dbDir := filepath.Dir(path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	// Pure Go SQLite
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&domain.ExecutionRecord{}, &domain.MessageLog{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Storage{db: db}, nil
}

// RecordExecution persists one emitted execution report.
func (s *Storage) RecordExecution(report *domain.ExecutionReport) error {
	rec := domain.ExecutionRecord{
		SessionID: string(report.Session),
		OrderID:   report.OrderID,
		ExecID:    report.ExecID,
		ClOrdID:   report.ClOrdID,
		Symbol:    report.Symbol,
		Side:      report.Side.String(),
		ExecType:  report.ExecType,
		OrdStatus: report.OrdStatus,
		LastQty:   report.LastQty,
		LastPx:    report.LastPx.String(),
		CumQty:    report.CumQty,
		AvgPx:     report.AvgPx.String(),
		LeavesQty: report.LeavesQty,
	}
	return s.db.Create(&rec).Error
}

// RecordMessage persists one message log row.
func (s *Storage) RecordMessage(entry *domain.MessageLog) error {
	return s.db.Create(entry).Error
}

// FindExecution returns the latest persisted report for (session, ClOrdID),
// or nil when none exists.
func (s *Storage) FindExecution(sessionID, clOrdID string) (*domain.ExecutionRecord, error) {
	var rec domain.ExecutionRecord
	err := s.db.
		Where("session_id = ? AND cl_ord_id = ?", sessionID, clOrdID).
		Order("id DESC").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // Not found is not an error
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// RecentExecutions returns up to limit reports, newest first.
func (s *Storage) RecentExecutions(limit int) ([]domain.ExecutionRecord, error) {
	var recs []domain.ExecutionRecord
	err := s.db.Order("id DESC").Limit(limit).Find(&recs).Error
	return recs, err
}

// RecentMessages returns up to limit message log rows, newest first.
func (s *Storage) RecentMessages(limit int) ([]domain.MessageLog, error) {
	var rows []domain.MessageLog
	err := s.db.Order("id DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

// Close releases the underlying database handle.
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
