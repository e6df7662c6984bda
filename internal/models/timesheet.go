package models

import "encoding/json"

// Timesheet books hours for one staff member against one work order on a day.
type Timesheet struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	StaffID     uint    `gorm:"not null;index" json:"staffId"`
	WorkOrderID uint    `gorm:"not null;index" json:"workOrderId"`
	Date        Date    `gorm:"not null;index" json:"date"`
	Hours       float64 `gorm:"type:decimal(5,2);not null" json:"hours"`
}

func (t *Timesheet) Key() uint      { return t.ID }
func (t *Timesheet) SetKey(id uint) { t.ID = id }

// UnmarshalJSON accepts numeric fields as JSON numbers or numeric strings.
func (t *Timesheet) UnmarshalJSON(data []byte) error {
	type plain Timesheet
	var aux struct {
		plain
		ID          *number `json:"id"`
		StaffID     *number `json:"staffId"`
		WorkOrderID *number `json:"workOrderId"`
		Hours       *number `json:"hours"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*t = Timesheet(aux.plain)
	return firstError(
		aux.ID.toUint("id", &t.ID),
		aux.StaffID.toUint("staffId", &t.StaffID),
		aux.WorkOrderID.toUint("workOrderId", &t.WorkOrderID),
		aux.Hours.toFloat("hours", &t.Hours),
	)
}
