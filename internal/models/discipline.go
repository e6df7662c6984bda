package models

import "encoding/json"

// Discipline is a trade with an hourly rate, e.g. welder or electrician.
type Discipline struct {
	ID   uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string  `gorm:"size:50;not null;index" json:"name"`
	Rate float64 `gorm:"type:decimal(19,4)" json:"rate"`
}

func (d *Discipline) Key() uint      { return d.ID }
func (d *Discipline) SetKey(id uint) { d.ID = id }

// UnmarshalJSON accepts numeric fields as JSON numbers or numeric strings.
func (d *Discipline) UnmarshalJSON(data []byte) error {
	type plain Discipline
	var aux struct {
		plain
		ID   *number `json:"id"`
		Rate *number `json:"rate"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*d = Discipline(aux.plain)
	return firstError(
		aux.ID.toUint("id", &d.ID),
		aux.Rate.toFloat("rate", &d.Rate),
	)
}
