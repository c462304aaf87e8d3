package models

import (
	"time"
)

// PropertyUnit represents a single rentable unit within a property
type PropertyUnit struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PropertyID uint      `gorm:"not null;index" json:"property_id"`
	Rent       float64   `gorm:"type:decimal(15,2)" json:"rent"`
	Status     string    `gorm:"default:Vacant;index" json:"status"`
	TenantName *string   `json:"tenant_name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Associations
	StatusHistory []UnitStatusHistory `gorm:"foreignKey:PropertyUnitID" json:"status_history,omitempty"`
}

// TableName specifies the table name for PropertyUnit
func (PropertyUnit) TableName() string {
	return "property_units"
}

// Unit status constants
const (
	UnitStatusOccupied   = "Occupied"
	UnitStatusVacant     = "Vacant"
	UnitStatusBehindRent = "Behind on Rent"
)

// IsVacant returns true if the unit has no tenant
func (u *PropertyUnit) IsVacant() bool {
	return u.Status == UnitStatusVacant
}

// IsDelinquent returns true if the tenant is behind on rent
func (u *PropertyUnit) IsDelinquent() bool {
	return u.Status == UnitStatusBehindRent
}

// MayOccupy returns true if a tenant can move in
func (u *PropertyUnit) MayOccupy() bool {
	return u.Status == UnitStatusVacant
}

// MayVacate returns true if the current tenant can move out
func (u *PropertyUnit) MayVacate() bool {
	return u.Status == UnitStatusOccupied || u.Status == UnitStatusBehindRent
}

// CurrentStatusSince returns the start date of the unit's current status,
// or the zero time if no history has been recorded
func (u *PropertyUnit) CurrentStatusSince() time.Time {
	if len(u.StatusHistory) == 0 {
		return time.Time{}
	}
	return u.StatusHistory[len(u.StatusHistory)-1].DateStart
}

// UnitStatusHistory is an append-only log of unit status changes
type UnitStatusHistory struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	PropertyUnitID uint      `gorm:"not null;index" json:"property_unit_id"`
	Status         string    `gorm:"not null" json:"status"`
	DateStart      time.Time `gorm:"not null" json:"date_start"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName specifies the table name for UnitStatusHistory
func (UnitStatusHistory) TableName() string {
	return "unit_status_histories"
}

// PropertyUnitResponse is the JSON response format for property units
type PropertyUnitResponse struct {
	ID          uint       `json:"id"`
	PropertyID  uint       `json:"property_id"`
	Rent        float64    `json:"rent"`
	Status      string     `json:"status"`
	TenantName  *string    `json:"tenant_name"`
	StatusSince *time.Time `json:"status_since"`
}

// ToResponse converts PropertyUnit to PropertyUnitResponse
func (u *PropertyUnit) ToResponse() PropertyUnitResponse {
	resp := PropertyUnitResponse{
		ID:         u.ID,
		PropertyID: u.PropertyID,
		Rent:       u.Rent,
		Status:     u.Status,
		TenantName: u.TenantName,
	}
	if since := u.CurrentStatusSince(); !since.IsZero() {
		resp.StatusSince = &since
	}
	return resp
}
