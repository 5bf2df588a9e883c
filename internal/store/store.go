package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/goliatone/go-catalog/pkg/record"
	"github.com/goliatone/go-catalog/pkg/relation"
)

// ErrNotFound is returned when a record does not exist in its series.
var ErrNotFound = errors.New("store: record not found")

// document is one catalog record row. Records keep their free-form field map
// as a JSON payload; doc ids are allocated per series.
type document struct {
	ID      uint   `gorm:"primaryKey"`
	Series  string `gorm:"size:16;index:idx_series_doc,unique"`
	DocID   int    `gorm:"index:idx_series_doc,unique"`
	Payload string
}

// statement is one relation triple. The triple itself is unique.
type statement struct {
	ID        uint   `gorm:"primaryKey"`
	Subject   string `gorm:"size:32;index;index:idx_triple,unique"`
	Predicate string `gorm:"size:32;index:idx_triple,unique"`
	Object    string `gorm:"size:32;index;index:idx_triple,unique"`
}

// Store persists catalog records and their relations in SQLite. It satisfies
// relation.Graph.
type Store struct {
	db *gorm.DB
}

var _ relation.Graph = (*Store)(nil)

// Open opens (or creates) the catalog database at path and migrates the
// schema. Use ":memory:" for throwaway stores in tests.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("store: database path is required")
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	if err := db.AutoMigrate(&document{}, &statement{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Load fetches a record by series and doc id. A missing record yields
// ErrNotFound so callers can distinguish 404s from storage failures.
func (s *Store) Load(ctx context.Context, series record.Series, docID int) (record.Record, error) {
	var doc document
	err := s.db.WithContext(ctx).
		Where("series = ? AND doc_id = ?", string(series), docID).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return record.Record{}, ErrNotFound
	}
	if err != nil {
		return record.Record{}, fmt.Errorf("store: load %s%d: %w", series, docID, err)
	}
	return decode(doc)
}

// LoadID fetches a record by its catalog id string.
func (s *Store) LoadID(ctx context.Context, id string) (record.Record, error) {
	parsed, err := record.ParseID(id)
	if err != nil {
		return record.Record{}, err
	}
	return s.Load(ctx, parsed.Series, parsed.DocID)
}

// All returns every record in a series, ordered by doc id.
func (s *Store) All(ctx context.Context, series record.Series) ([]record.Record, error) {
	var docs []document
	err := s.db.WithContext(ctx).
		Where("series = ?", string(series)).
		Order("doc_id").
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("store: list %s: %w", series, err)
	}
	records := make([]record.Record, 0, len(docs))
	for _, doc := range docs {
		rec, err := decode(doc)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Save persists a record. New records (doc id zero) are allocated the next
// doc id in their series; existing records have their payload replaced. The
// field map is cleaned before writing and the stored doc id is returned.
func (s *Store) Save(ctx context.Context, rec *record.Record) error {
	if rec == nil {
		return errors.New("store: record is nil")
	}
	fields := record.Cleanup(rec.Fields)
	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("store: encode record: %w", err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if rec.DocID > 0 {
			res := tx.Model(&document{}).
				Where("series = ? AND doc_id = ?", string(rec.Series), rec.DocID).
				Update("payload", string(payload))
			if res.Error != nil {
				return fmt.Errorf("store: update %s: %w", rec.ID(), res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrNotFound
			}
			return nil
		}

		var next int
		row := tx.Model(&document{}).
			Where("series = ?", string(rec.Series)).
			Select("COALESCE(MAX(doc_id), 0) + 1")
		if err := row.Scan(&next).Error; err != nil {
			return fmt.Errorf("store: allocate doc id: %w", err)
		}
		doc := document{Series: string(rec.Series), DocID: next, Payload: string(payload)}
		if err := tx.Create(&doc).Error; err != nil {
			return fmt.Errorf("store: insert %s record: %w", rec.Series, err)
		}
		rec.DocID = next
		return nil
	})
}

// Delete removes a record. Its relation statements are left to the caller,
// which knows which bindings to clear.
func (s *Store) Delete(ctx context.Context, series record.Series, docID int) error {
	res := s.db.WithContext(ctx).
		Where("series = ? AND doc_id = ?", string(series), docID).
		Delete(&document{})
	if res.Error != nil {
		return fmt.Errorf("store: delete %s%d: %w", series, docID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func decode(doc document) (record.Record, error) {
	series, err := record.ParseSeries(doc.Series)
	if err != nil {
		return record.Record{}, fmt.Errorf("store: row %d: %w", doc.ID, err)
	}
	fields := map[string]any{}
	if doc.Payload != "" {
		if err := json.Unmarshal([]byte(doc.Payload), &fields); err != nil {
			return record.Record{}, fmt.Errorf("store: decode %s%d: %w", doc.Series, doc.DocID, err)
		}
	}
	return record.Record{DocID: doc.DocID, Series: series, Fields: fields}, nil
}
