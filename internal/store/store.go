package store

import (
	"fmt"
	"strings"

	"github.com/zulandar/drydock/internal/models"
	"gorm.io/gorm"
)

// Store groups the repositories for every entity except timesheets, which
// have their own query layer.
type Store struct {
	Clients     *Table[models.Client, *models.Client]
	Vessels     *Table[models.Vessel, *models.Vessel]
	Projects    *Table[models.Project, *models.Project]
	WorkOrders  *Table[models.WorkOrder, *models.WorkOrder]
	Disciplines *Table[models.Discipline, *models.Discipline]
	Staff       *Table[models.Staff, *models.Staff]
}

// New returns a Store bound to db.
func New(db *gorm.DB) *Store {
	return &Store{
		Clients: NewTable(db, TableOpts[models.Client, *models.Client]{
			Noun:  "client",
			Check: checkClient,
		}),
		Vessels: NewTable(db, TableOpts[models.Vessel, *models.Vessel]{
			Noun:  "vessel",
			Check: checkVessel,
		}),
		Projects: NewTable(db, TableOpts[models.Project, *models.Project]{
			Noun:  "project",
			Check: checkProject,
		}),
		WorkOrders: NewTable(db, TableOpts[models.WorkOrder, *models.WorkOrder]{
			Noun:  "work order",
			Check: checkWorkOrder,
			Label: WorkOrderLabel,
		}),
		Disciplines: NewTable(db, TableOpts[models.Discipline, *models.Discipline]{
			Noun:  "discipline",
			Check: checkDiscipline,
		}),
		Staff: NewTable(db, TableOpts[models.Staff, *models.Staff]{
			Noun:  "staff",
			Check: checkStaff,
		}),
	}
}

// WorkOrderLabel formats a work order as "<task> - <description>".
func WorkOrderLabel(w *models.WorkOrder) string {
	desc := strings.TrimSpace(w.Description)
	if desc == "" {
		return fmt.Sprintf("%d", w.TaskNumber)
	}
	return fmt.Sprintf("%d - %s", w.TaskNumber, desc)
}

func checkClient(_ *gorm.DB, c *models.Client) error {
	return RequireName("name", &c.Name, 100)
}

func checkVessel(tx *gorm.DB, v *models.Vessel) error {
	if err := RequireName("name", &v.Name, 200); err != nil {
		return err
	}
	return RequireRef(tx, &models.Client{}, "clientId", v.ClientID)
}

func checkProject(tx *gorm.DB, p *models.Project) error {
	if err := RequireName("name", &p.Name, 200); err != nil {
		return err
	}
	return RequireRef(tx, &models.Vessel{}, "vesselId", p.VesselID)
}

func checkWorkOrder(tx *gorm.DB, w *models.WorkOrder) error {
	if w.TaskNumber < 0 {
		return Invalid("taskNumber", "must not be negative")
	}
	w.Description = strings.TrimSpace(w.Description)
	if err := MaxLen("description", w.Description, 2000); err != nil {
		return err
	}
	return RequireRef(tx, &models.Project{}, "projectId", w.ProjectID)
}

func checkDiscipline(_ *gorm.DB, d *models.Discipline) error {
	if err := RequireName("name", &d.Name, 50); err != nil {
		return err
	}
	if d.Rate < 0 {
		return Invalid("rate", "must not be negative")
	}
	return nil
}

func checkStaff(tx *gorm.DB, s *models.Staff) error {
	if err := RequireName("name", &s.Name, 255); err != nil {
		return err
	}
	s.PersonalID = strings.TrimSpace(s.PersonalID)
	if err := MaxLen("personalId", s.PersonalID, 64); err != nil {
		return err
	}
	return RequireRef(tx, &models.Discipline{}, "disciplineId", s.DisciplineID)
}
