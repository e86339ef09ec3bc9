package equipment

import (
	"time"

	equipmentDatamodel "github.com/frahmantamala/maintenance-management/internal/core/datamodel/equipment"
)

const (
	StatusActive   = "ACTIVE"
	StatusScrapped = "SCRAPPED"
)

const (
	CategoryMachinery = "MACHINERY"
	CategoryVehicle   = "VEHICLE"
	CategoryComputer  = "COMPUTER"
	CategoryTool      = "TOOL"
	CategoryOther     = "OTHER"
)

var Categories = []string{CategoryMachinery, CategoryVehicle, CategoryComputer, CategoryTool, CategoryOther}

const DefaultScrapReason = "Manual scrap action"

type Equipment struct {
	ID                  int64      `json:"id"`
	Name                string     `json:"name"`
	SerialNumber        string     `json:"serial_number"`
	Category            string     `json:"category"`
	PurchaseDate        time.Time  `json:"purchase_date"`
	WarrantyExpiry      time.Time  `json:"warranty_expiry"`
	Location            string     `json:"location"`
	Department          string     `json:"department"`
	AssignedEmployeeID  int64      `json:"assigned_employee_id"`
	MaintenanceTeamID   int64      `json:"maintenance_team_id"`
	DefaultTechnicianID *int64     `json:"default_technician_id,omitempty"`
	Status              string     `json:"status"`
	ScrapReason         *string    `json:"scrap_reason,omitempty"`
	ScrapDate           *time.Time `json:"scrap_date,omitempty"`
	Specifications      string     `json:"specifications,omitempty"`
	OpenRequestsCount   int64      `json:"open_requests_count,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func (e *Equipment) IsScrapped() bool {
	return e.Status == StatusScrapped
}

// MarkAsScrap retires the equipment. The transition is one-way; callers must
// not invoke it on already scrapped equipment expecting the original reason
// to survive.
func (e *Equipment) MarkAsScrap(reason string) {
	if reason == "" {
		reason = DefaultScrapReason
	}
	now := time.Now()
	e.Status = StatusScrapped
	e.ScrapReason = &reason
	e.ScrapDate = &now
	e.UpdatedAt = now
}

func ToDataModel(e *Equipment) *equipmentDatamodel.Equipment {
	return &equipmentDatamodel.Equipment{
		ID:                  e.ID,
		Name:                e.Name,
		SerialNumber:        e.SerialNumber,
		Category:            e.Category,
		PurchaseDate:        e.PurchaseDate,
		WarrantyExpiry:      e.WarrantyExpiry,
		Location:            e.Location,
		Department:          e.Department,
		AssignedEmployeeID:  e.AssignedEmployeeID,
		MaintenanceTeamID:   e.MaintenanceTeamID,
		DefaultTechnicianID: e.DefaultTechnicianID,
		Status:              e.Status,
		ScrapReason:         e.ScrapReason,
		ScrapDate:           e.ScrapDate,
		Specifications:      e.Specifications,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
}

func FromDataModel(e *equipmentDatamodel.Equipment) *Equipment {
	return &Equipment{
		ID:                  e.ID,
		Name:                e.Name,
		SerialNumber:        e.SerialNumber,
		Category:            e.Category,
		PurchaseDate:        e.PurchaseDate,
		WarrantyExpiry:      e.WarrantyExpiry,
		Location:            e.Location,
		Department:          e.Department,
		AssignedEmployeeID:  e.AssignedEmployeeID,
		MaintenanceTeamID:   e.MaintenanceTeamID,
		DefaultTechnicianID: e.DefaultTechnicianID,
		Status:              e.Status,
		ScrapReason:         e.ScrapReason,
		ScrapDate:           e.ScrapDate,
		Specifications:      e.Specifications,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
}

func FromDataModelSlice(items []*equipmentDatamodel.Equipment) []*Equipment {
	result := make([]*Equipment, len(items))
	for i, e := range items {
		result[i] = FromDataModel(e)
	}
	return result
}
