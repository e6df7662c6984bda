package models

import "encoding/json"

// WorkOrder is a numbered task within a project. Timesheets book hours
// against work orders.
type WorkOrder struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	TaskNumber  int    `gorm:"index" json:"taskNumber"`
	Description string `gorm:"size:2000" json:"description"`
	ProjectID   *uint  `gorm:"index" json:"projectId"`
}

func (w *WorkOrder) Key() uint      { return w.ID }
func (w *WorkOrder) SetKey(id uint) { w.ID = id }

// UnmarshalJSON accepts numeric fields as JSON numbers or numeric strings.
func (w *WorkOrder) UnmarshalJSON(data []byte) error {
	type plain WorkOrder
	var aux struct {
		plain
		ID         *number `json:"id"`
		TaskNumber *number `json:"taskNumber"`
		ProjectID  *number `json:"projectId"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*w = WorkOrder(aux.plain)
	return firstError(
		aux.ID.toUint("id", &w.ID),
		aux.TaskNumber.toInt("taskNumber", &w.TaskNumber),
		aux.ProjectID.toRef("projectId", &w.ProjectID),
	)
}
