package expense

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date TEXT NOT NULL,
	description TEXT NOT NULL,
	category TEXT NOT NULL,
	kind TEXT NOT NULL,
	amount TEXT NOT NULL
);
`

// SQLiteStore persists records in a single-table SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore opens the database at path, creating the schema if needed.
func NewSQLiteStore(path string, logger *zap.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

// Add validates and inserts one record.
func (s *SQLiteStore) Add(record Record) error {
	if err := record.Validate(); err != nil {
		return err
	}
	_, err := s.db.Exec(
		`INSERT INTO records (date, description, category, kind, amount) VALUES (?, ?, ?, ?, ?)`,
		record.Date, record.Description, record.Category, string(record.Kind), record.Amount.String(),
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	s.logger.Debug("expense record saved",
		zap.String("op", "expense.SQLiteStore.Add"),
		zap.String("date", record.Date),
		zap.String("category", record.Category),
	)
	return nil
}

// List returns all records in insertion order.
func (s *SQLiteStore) List() ([]Record, error) {
	rows, err := s.db.Query(`SELECT date, description, category, kind, amount FROM records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		var record Record
		var kind, amount string
		if err := rows.Scan(&record.Date, &record.Description, &record.Category, &kind, &amount); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		record.Kind = Kind(kind)
		record.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("%w: stored amount %q", ErrInvalidAmount, amount)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
