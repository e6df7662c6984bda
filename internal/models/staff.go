package models

import "encoding/json"

// Staff is a person who books hours.
type Staff struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"size:255;not null;index" json:"name"`
	PersonalID   string `gorm:"size:64" json:"personalId"`
	DisciplineID *uint  `gorm:"index" json:"disciplineId"`
}

// TableName keeps the table singular; "staff" is already a collective noun.
func (Staff) TableName() string {
	return "staff"
}

func (s *Staff) Key() uint      { return s.ID }
func (s *Staff) SetKey(id uint) { s.ID = id }

// UnmarshalJSON accepts numeric fields as JSON numbers or numeric strings.
func (s *Staff) UnmarshalJSON(data []byte) error {
	type plain Staff
	var aux struct {
		plain
		ID           *number `json:"id"`
		DisciplineID *number `json:"disciplineId"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = Staff(aux.plain)
	return firstError(
		aux.ID.toUint("id", &s.ID),
		aux.DisciplineID.toRef("disciplineId", &s.DisciplineID),
	)
}
