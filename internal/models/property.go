package models

import (
	"time"
)

// Property represents a property in the portfolio, from acquisition
// opportunity through rental or sale
type Property struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Address           string    `gorm:"not null;index" json:"address"`
	Status            string    `gorm:"default:Opportunity;index" json:"status"`
	Archived          bool      `gorm:"default:false;index" json:"archived"`
	ListingPrice      float64   `gorm:"type:decimal(15,2)" json:"listing_price"`
	OfferPrice        float64   `gorm:"type:decimal(15,2)" json:"offer_price"`
	RehabCosts        float64   `gorm:"type:decimal(15,2)" json:"rehab_costs"`
	PotentialRent     float64   `gorm:"type:decimal(15,2)" json:"potential_rent"`
	ARV               float64   `gorm:"column:arv;type:decimal(15,2)" json:"arv"`
	Units             *int      `json:"units"`
	CurrentHouseValue *float64  `gorm:"type:decimal(15,2)" json:"current_house_value"`
	CurrentLoanValue  *float64  `gorm:"type:decimal(15,2)" json:"current_loan_value"`
	Note              *string   `gorm:"type:text" json:"note"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Associations
	PropertyUnits []PropertyUnit `gorm:"foreignKey:PropertyID" json:"property_units,omitempty"`
	Transactions  []Transaction  `gorm:"foreignKey:PropertyID" json:"transactions,omitempty"`
}

// TableName specifies the table name for Property
func (Property) TableName() string {
	return "properties"
}

// Property status constants
const (
	PropertyStatusOpportunity = "Opportunity"
	PropertyStatusSoftOffer   = "Soft Offer"
	PropertyStatusHardOffer   = "Hard Offer"
	PropertyStatusRehab       = "Rehab"
	PropertyStatusRented      = "Rented"
	PropertyStatusSold        = "Sold"
)

// PreAcquisitionStatuses are the offer stages before a deal closes.
// Rehab is past closing: the property is owned and its spend is real.
var PreAcquisitionStatuses = []string{
	PropertyStatusOpportunity,
	PropertyStatusSoftOffer,
	PropertyStatusHardOffer,
}

// UnitCount returns the number of rentable units, never less than 1
func (p *Property) UnitCount() int {
	if p.Units == nil || *p.Units <= 0 {
		return 1
	}
	return *p.Units
}

// TotalInvestment returns offer price plus rehab costs
func (p *Property) TotalInvestment() float64 {
	return p.OfferPrice + p.RehabCosts
}

// PreAcquisition returns true while the property is still under offer
// and not yet owned
func (p *Property) PreAcquisition() bool {
	for _, s := range PreAcquisitionStatuses {
		if p.Status == s {
			return true
		}
	}
	return false
}

// IsOperating returns true when the property produces rent
func (p *Property) IsOperating() bool {
	return p.Status == PropertyStatusRented
}

// PropertyResponse is the JSON response format for properties
type PropertyResponse struct {
	ID                uint     `json:"id"`
	Address           string   `json:"address"`
	Status            string   `json:"status"`
	Archived          bool     `json:"archived"`
	ListingPrice      float64  `json:"listing_price"`
	OfferPrice        float64  `json:"offer_price"`
	RehabCosts        float64  `json:"rehab_costs"`
	PotentialRent     float64  `json:"potential_rent"`
	ARV               float64  `json:"arv"`
	Units             int      `json:"units"`
	TotalInvestment   float64  `json:"total_investment"`
	CurrentHouseValue *float64 `json:"current_house_value"`
	CurrentLoanValue  *float64 `json:"current_loan_value"`
	Note              *string  `json:"note"`
}

// ToResponse converts Property to PropertyResponse
func (p *Property) ToResponse() PropertyResponse {
	return PropertyResponse{
		ID:                p.ID,
		Address:           p.Address,
		Status:            p.Status,
		Archived:          p.Archived,
		ListingPrice:      p.ListingPrice,
		OfferPrice:        p.OfferPrice,
		RehabCosts:        p.RehabCosts,
		PotentialRent:     p.PotentialRent,
		ARV:               p.ARV,
		Units:             p.UnitCount(),
		TotalInvestment:   p.TotalInvestment(),
		CurrentHouseValue: p.CurrentHouseValue,
		CurrentLoanValue:  p.CurrentLoanValue,
		Note:              p.Note,
	}
}
