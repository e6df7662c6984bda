package store

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"
)

// RequireName trims *s and checks it is non-empty and at most max runes.
func RequireName(field string, s *string, max int) error {
	*s = strings.TrimSpace(*s)
	if *s == "" {
		return Invalid(field, "is required")
	}
	return MaxLen(field, *s, max)
}

// MaxLen checks that s is at most max runes long.
func MaxLen(field, s string, max int) error {
	if n := utf8.RuneCountInString(s); n > max {
		return Invalid(field, fmt.Sprintf("is %d characters, maximum is %d", n, max))
	}
	return nil
}

// RequireRef checks that a non-nil reference names an existing row of model.
func RequireRef(tx *gorm.DB, model interface{}, field string, id *uint) error {
	if id == nil {
		return nil
	}
	return RequireRow(tx, model, field, *id)
}

// RequireRow checks that id is set and names an existing row of model.
func RequireRow(tx *gorm.DB, model interface{}, field string, id uint) error {
	if id == 0 {
		return Invalid(field, "is required")
	}
	var n int64
	if err := tx.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("check %s: %w", field, err)
	}
	if n == 0 {
		return Invalid(field, fmt.Sprintf("references missing row %d", id))
	}
	return nil
}
