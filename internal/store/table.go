// Package store provides single-table CRUD repositories for the timesheet
// schema.
package store

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/zulandar/drydock/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Option is a dropdown entry.
type Option struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Table is a repository over one model type. P is the pointer type of T.
type Table[T any, P interface {
	*T
	models.Record
}] struct {
	db    *gorm.DB
	noun  string
	order string
	check func(tx *gorm.DB, rec P) error
	label func(rec P) string
}

// TableOpts configures a Table.
type TableOpts[T any, P interface {
	*T
	models.Record
}] struct {
	// Noun names the entity in errors, e.g. "vessel".
	Noun string
	// Order is the ORDER BY used by List and ListBy. Defaults to "id ASC".
	Order string
	// Check validates and normalizes a record before it is written.
	Check func(tx *gorm.DB, rec P) error
	// Label builds the dropdown name. Nil projects the name column.
	Label func(rec P) string
}

// NewTable returns a Table bound to db.
func NewTable[T any, P interface {
	*T
	models.Record
}](db *gorm.DB, opts TableOpts[T, P]) *Table[T, P] {
	if opts.Order == "" {
		opts.Order = "id ASC"
	}
	return &Table[T, P]{
		db:    db,
		noun:  opts.Noun,
		order: opts.Order,
		check: opts.Check,
		label: opts.Label,
	}
}

// Noun returns the entity name used in errors.
func (t *Table[T, P]) Noun() string {
	return t.noun
}

// List returns every row.
func (t *Table[T, P]) List(ctx context.Context) ([]T, error) {
	rows := make([]T, 0)
	if err := t.db.WithContext(ctx).Order(t.order).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%s: list: %w", t.noun, err)
	}
	return rows, nil
}

// ListBy returns rows whose column equals id, e.g. vessels of one client.
// column must be a fixed identifier, never caller input.
func (t *Table[T, P]) ListBy(ctx context.Context, column string, id uint) ([]T, error) {
	rows := make([]T, 0)
	err := t.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: id}).
		Order(t.order).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%s: list by %s: %w", t.noun, column, err)
	}
	return rows, nil
}

// Get returns the row with the given id.
func (t *Table[T, P]) Get(ctx context.Context, id uint) (*T, error) {
	var row T
	if err := t.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s %d: %w", t.noun, id, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: get %d: %w", t.noun, id, err)
	}
	return &row, nil
}

// Create validates rec and inserts it, setting its generated id.
func (t *Table[T, P]) Create(ctx context.Context, rec P) (P, error) {
	tx := t.db.WithContext(ctx)
	rec.SetKey(0)
	if err := t.validate(tx, rec); err != nil {
		return nil, fmt.Errorf("%s: create: %w", t.noun, err)
	}
	if err := tx.Create(rec).Error; err != nil {
		return nil, translate(t.noun, "create", err)
	}
	return rec, nil
}

// Update replaces every column of the row with the given id. A missing
// row is reported before any validation error.
func (t *Table[T, P]) Update(ctx context.Context, id uint, rec P) (P, error) {
	tx := t.db.WithContext(ctx)
	var n int64
	if err := tx.Model(P(new(T))).Where("id = ?", id).Count(&n).Error; err != nil {
		return nil, fmt.Errorf("%s: update %d: %w", t.noun, id, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%s %d: %w", t.noun, id, ErrNotFound)
	}
	rec.SetKey(id)
	if err := t.validate(tx, rec); err != nil {
		return nil, fmt.Errorf("%s: update %d: %w", t.noun, id, err)
	}
	res := tx.Model(rec).Select("*").Updates(rec)
	if res.Error != nil {
		return nil, translate(t.noun, fmt.Sprintf("update %d", id), res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%s %d: %w", t.noun, id, ErrNotFound)
	}
	return rec, nil
}

// Delete removes the row with the given id. Rows referencing it are left
// in place.
func (t *Table[T, P]) Delete(ctx context.Context, id uint) error {
	res := t.db.WithContext(ctx).Where("id = ?", id).Delete(P(new(T)))
	if res.Error != nil {
		return translate(t.noun, fmt.Sprintf("delete %d", id), res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s %d: %w", t.noun, id, ErrNotFound)
	}
	return nil
}

// Options returns {id, name} pairs sorted by name in byte order, whatever
// the database collation.
func (t *Table[T, P]) Options(ctx context.Context) ([]Option, error) {
	tx := t.db.WithContext(ctx)
	opts := make([]Option, 0)

	if t.label == nil {
		if err := tx.Model(P(new(T))).Select("id", "name").Scan(&opts).Error; err != nil {
			return nil, fmt.Errorf("%s: options: %w", t.noun, err)
		}
		SortOptions(opts)
		return opts, nil
	}

	var rows []T
	if err := tx.Order(t.order).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%s: options: %w", t.noun, err)
	}
	for i := range rows {
		rec := P(&rows[i])
		opts = append(opts, Option{ID: rec.Key(), Name: t.label(rec)})
	}
	SortOptions(opts)
	return opts, nil
}

// SortOptions orders options by name (byte order), then id.
func SortOptions(opts []Option) {
	slices.SortStableFunc(opts, func(a, b Option) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

func (t *Table[T, P]) validate(tx *gorm.DB, rec P) error {
	if t.check == nil {
		return nil
	}
	return t.check(tx, rec)
}
