package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/goliatone/go-catalog/pkg/record"
	"github.com/goliatone/go-catalog/pkg/relation"
)

// Add inserts relation statements, skipping triples that already exist.
func (s *Store) Add(ctx context.Context, triples []relation.Triple) error {
	if len(triples) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, t := range triples {
			if t.Subject == "" || t.Predicate == "" || t.Object == "" {
				return fmt.Errorf("store: incomplete triple %+v", t)
			}
			var count int64
			err := tx.Model(&statement{}).
				Where("subject = ? AND predicate = ? AND object = ?", t.Subject, t.Predicate, t.Object).
				Count(&count).Error
			if err != nil {
				return fmt.Errorf("store: check triple: %w", err)
			}
			if count > 0 {
				continue
			}
			row := statement{Subject: t.Subject, Predicate: t.Predicate, Object: t.Object}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("store: insert triple: %w", err)
			}
		}
		return nil
	})
}

// Remove deletes relation statements and reports the triples actually
// removed, so callers can compare intent with effect.
func (s *Store) Remove(ctx context.Context, triples []relation.Triple) ([]relation.Triple, error) {
	if len(triples) == 0 {
		return nil, nil
	}
	var removed []relation.Triple
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, t := range triples {
			res := tx.Where("subject = ? AND predicate = ? AND object = ?", t.Subject, t.Predicate, t.Object).
				Delete(&statement{})
			if res.Error != nil {
				return fmt.Errorf("store: delete triple: %w", res.Error)
			}
			if res.RowsAffected > 0 {
				removed = append(removed, t)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// Disconnect deletes every statement that mentions the given id, on either
// side. Used when a record is removed from the catalog.
func (s *Store) Disconnect(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).
		Where("subject = ? OR object = ?", id, id).
		Delete(&statement{})
	if res.Error != nil {
		return fmt.Errorf("store: disconnect %s: %w", id, res.Error)
	}
	return nil
}

// Subjects lists ids of records that appear as statement subjects, optionally
// filtered by predicate and object.
func (s *Store) Subjects(ctx context.Context, predicate, object string) ([]string, error) {
	q := s.db.WithContext(ctx).Model(&statement{}).Distinct("subject")
	if predicate != "" {
		q = q.Where("predicate = ?", predicate)
	}
	if object != "" {
		q = q.Where("object = ?", object)
	}
	var ids []string
	if err := q.Pluck("subject", &ids).Error; err != nil {
		return nil, fmt.Errorf("store: subjects: %w", err)
	}
	record.SortIDs(ids)
	return ids, nil
}

// Objects lists ids of records that appear as statement objects, optionally
// filtered by subject and predicate.
func (s *Store) Objects(ctx context.Context, subject, predicate string) ([]string, error) {
	q := s.db.WithContext(ctx).Model(&statement{}).Distinct("object")
	if subject != "" {
		q = q.Where("subject = ?", subject)
	}
	if predicate != "" {
		q = q.Where("predicate = ?", predicate)
	}
	var ids []string
	if err := q.Pluck("object", &ids).Error; err != nil {
		return nil, fmt.Errorf("store: objects: %w", err)
	}
	record.SortIDs(ids)
	return ids, nil
}

// RelationsOf returns every forward statement with the given subject, grouped
// by predicate. The API exposes these as a record's relation entry.
func (s *Store) RelationsOf(ctx context.Context, subject string) (map[string][]string, error) {
	var rows []statement
	err := s.db.WithContext(ctx).
		Where("subject = ?", subject).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("store: relations of %s: %w", subject, err)
	}
	out := make(map[string][]string)
	for _, row := range rows {
		out[row.Predicate] = append(out[row.Predicate], row.Object)
	}
	for predicate := range out {
		record.SortIDs(out[predicate])
	}
	return out, nil
}

// RelationSubjects returns every id that appears as a subject, in catalog-id
// order. Used by the API to page through the relations table.
func (s *Store) RelationSubjects(ctx context.Context) ([]string, error) {
	return s.Subjects(ctx, "", "")
}
