// Package models defines the GORM models for the timesheet schema.
package models

// Record is implemented by every model with an auto-increment primary key.
type Record interface {
	Key() uint
	SetKey(id uint)
}
