package models

// UnitAlert flags a unit that needs attention, either vacant or behind
// on rent
type UnitAlert struct {
	UnitNumber   int     `json:"unit_number"`
	Rent         float64 `json:"rent"`
	Status       string  `json:"status"`
	DaysInStatus int     `json:"days_in_status"`
	AmountOwed   float64 `json:"amount_owed"`
}

// ExpenseCategoryTotal is one category's spend in a month
type ExpenseCategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// OperationalMetrics is the health snapshot for one operating property
type OperationalMetrics struct {
	OccupancyRate             int                    `json:"occupancy_rate"`
	VacantUnits               []UnitAlert            `json:"vacant_units"`
	DelinquentUnits           []UnitAlert            `json:"delinquent_units"`
	ConsecutiveMonthsWithLoss int                    `json:"consecutive_months_with_loss"`
	TopExpenseCategories      []ExpenseCategoryTotal `json:"top_expense_categories"`
	LastMonth                 *MonthlyPLData         `json:"last_month,omitempty"`
	TotalMonthlyRent          float64                `json:"total_monthly_rent"`
	PotentialMonthlyRent      float64                `json:"potential_monthly_rent"`
}
