package models

import (
	"time"
)

// Transaction represents a single income or expense entry. Amounts are
// signed: income positive, expenses negative. Dates are stored as
// YYYY-MM-DD strings; OverrideDate reassigns the entry to a different
// reporting month without losing the date it actually cleared.
type Transaction struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PropertyID   *uint     `gorm:"index" json:"property_id"`
	Date         string    `gorm:"not null;index" json:"date"`
	OverrideDate *string   `json:"override_date"`
	Amount       float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Category     string    `gorm:"not null;index" json:"category"`
	ExpenseType  string    `gorm:"default:Operating" json:"expense_type"`
	Description  *string   `gorm:"type:text" json:"description"`
	ReceiptPath  *string   `json:"receipt_path"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Associations
	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}

// Expense type constants
const (
	ExpenseTypeOperating = "Operating"
	ExpenseTypeCapital   = "Capital"
)

// BucketDate returns the date used for monthly reporting, preferring the
// override when one is set
func (t *Transaction) BucketDate() string {
	if t.OverrideDate != nil && *t.OverrideDate != "" {
		return *t.OverrideDate
	}
	return t.Date
}

// IsIncome returns true for positive amounts
func (t *Transaction) IsIncome() bool {
	return t.Amount > 0
}

// IsOperating returns true when the entry counts toward monthly P&L.
// Rows written before the column default existed carry an empty type
// and are treated as Operating.
func (t *Transaction) IsOperating() bool {
	return t.ExpenseType == ExpenseTypeOperating || t.ExpenseType == ""
}

// TransactionResponse is the JSON response format for transactions
type TransactionResponse struct {
	ID           uint    `json:"id"`
	PropertyID   *uint   `json:"property_id"`
	Date         string  `json:"date"`
	OverrideDate *string `json:"override_date"`
	Amount       float64 `json:"amount"`
	Category     string  `json:"category"`
	ExpenseType  string  `json:"expense_type"`
	Description  *string `json:"description"`
	ReceiptPath  *string `json:"receipt_path"`
}

// ToResponse converts Transaction to TransactionResponse
func (t *Transaction) ToResponse() TransactionResponse {
	return TransactionResponse{
		ID:           t.ID,
		PropertyID:   t.PropertyID,
		Date:         t.Date,
		OverrideDate: t.OverrideDate,
		Amount:       t.Amount,
		Category:     t.Category,
		ExpenseType:  t.ExpenseType,
		Description:  t.Description,
		ReceiptPath:  t.ReceiptPath,
	}
}
