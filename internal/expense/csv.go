package expense

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// csvHeader is the required column set, in file order.
var csvHeader = []string{"date", "description", "category", "kind", "amount"}

// CSVStore persists records in a flat CSV file. Every Add rewrites the whole
// file; there are no transaction semantics beyond overwrite-whole-file.
type CSVStore struct {
	path   string
	logger *zap.Logger
}

// NewCSVStore opens (or prepares to create) the store at path. An existing
// file is validated immediately so schema problems surface at load time.
func NewCSVStore(path string, logger *zap.Logger) (*CSVStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &CSVStore{path: path, logger: logger}
	if _, err := os.Stat(path); err == nil {
		if _, err := s.List(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add validates the record, then rewrites the file with the record appended.
func (s *CSVStore) Add(record Record) error {
	if err := record.Validate(); err != nil {
		return err
	}
	records, err := s.load()
	if err != nil {
		return err
	}
	records = append(records, record)
	if err := s.rewrite(records); err != nil {
		return err
	}
	s.logger.Debug("expense record saved",
		zap.String("op", "expense.CSVStore.Add"),
		zap.String("date", record.Date),
		zap.String("category", record.Category),
	)
	return nil
}

// List returns all records in file order.
func (s *CSVStore) List() ([]Record, error) {
	return s.load()
}

// Close is a no-op; the file is not held open between operations.
func (s *CSVStore) Close() error { return nil }

func (s *CSVStore) load() ([]Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	index, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		amount, err := decimal.NewFromString(row[index["amount"]])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w: %q", i+2, ErrInvalidAmount, row[index["amount"]])
		}
		kind, err := ParseKind(row[index["kind"]])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		record := Record{
			Date:        row[index["date"]],
			Description: row[index["description"]],
			Category:    row[index["category"]],
			Kind:        kind,
			Amount:      amount,
		}
		if err := record.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *CSVStore) rewrite(records []Record) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", s.path, err)
	}
	writer := csv.NewWriter(f)
	if err := writer.Write(csvHeader); err != nil {
		_ = f.Close()
		return err
	}
	for _, record := range records {
		row := []string{record.Date, record.Description, record.Category, string(record.Kind), record.Amount.String()}
		if err := writer.Write(row); err != nil {
			_ = f.Close()
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// headerIndex maps required column names to their positions, reporting every
// absent column via ErrMissingColumn.
func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, required := range csvHeader {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, required)
		}
	}
	return index, nil
}
