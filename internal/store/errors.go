package store

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// ErrNotFound is returned (wrapped) when no row has the requested id.
var ErrNotFound = errors.New("not found")

// ValidationError reports a missing or malformed field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + " " + e.Reason
}

// Invalid returns a *ValidationError for field.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// MySQL server error numbers that indicate bad input rather than a broken store.
const (
	mysqlBadNull      = 1048
	mysqlOutOfRange   = 1264
	mysqlDataTooLong  = 1406
	mysqlTruncatedVal = 1292
)

// translate classifies a driver error. Constraint violations become
// validation errors; everything else is wrapped as-is.
func translate(noun, op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %s: %w", noun, op, &ValidationError{Reason: "duplicate key"})
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s: %s: %w", noun, op, &ValidationError{Reason: "references a missing row"})
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlBadNull, mysqlOutOfRange, mysqlDataTooLong, mysqlTruncatedVal:
			return fmt.Errorf("%s: %s: %w", noun, op, &ValidationError{Reason: me.Message})
		}
	}
	return fmt.Errorf("%s: %s: %w", noun, op, err)
}
