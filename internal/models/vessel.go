package models

import "encoding/json"

// Vessel belongs to a client and owns zero or more projects.
type Vessel struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"size:200;not null;index" json:"name"`
	Number   int    `json:"number"`
	ClientID *uint  `gorm:"index" json:"clientId"`
}

func (v *Vessel) Key() uint      { return v.ID }
func (v *Vessel) SetKey(id uint) { v.ID = id }

// UnmarshalJSON accepts numeric fields as JSON numbers or numeric strings.
func (v *Vessel) UnmarshalJSON(data []byte) error {
	type plain Vessel
	var aux struct {
		plain
		ID       *number `json:"id"`
		Number   *number `json:"number"`
		ClientID *number `json:"clientId"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*v = Vessel(aux.plain)
	return firstError(
		aux.ID.toUint("id", &v.ID),
		aux.Number.toInt("number", &v.Number),
		aux.ClientID.toRef("clientId", &v.ClientID),
	)
}
