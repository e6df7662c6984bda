package models

import "encoding/json"

// Project is a body of work on a vessel, split into work orders.
type Project struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"size:200;not null;index" json:"name"`
	Number   int    `json:"number"`
	VesselID *uint  `gorm:"index" json:"vesselId"`
}

func (p *Project) Key() uint      { return p.ID }
func (p *Project) SetKey(id uint) { p.ID = id }

// UnmarshalJSON accepts numeric fields as JSON numbers or numeric strings.
func (p *Project) UnmarshalJSON(data []byte) error {
	type plain Project
	var aux struct {
		plain
		ID       *number `json:"id"`
		Number   *number `json:"number"`
		VesselID *number `json:"vesselId"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = Project(aux.plain)
	return firstError(
		aux.ID.toUint("id", &p.ID),
		aux.Number.toInt("number", &p.Number),
		aux.VesselID.toRef("vesselId", &p.VesselID),
	)
}
