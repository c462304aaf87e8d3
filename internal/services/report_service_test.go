package services

import (
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/rentfolio/rentfolio-api/internal/models"
	"github.com/rentfolio/rentfolio-api/internal/opmetrics"
	"github.com/rentfolio/rentfolio-api/internal/repository"
	"github.com/stretchr/testify/assert"
)

// Mock TransactionRepository
type mockTransactionRepository struct {
	repository.TransactionRepository
	mockFindByProperty func(ctx context.Context, propertyID uint, fromDate string) ([]models.Transaction, error)
	mockFindSince      func(ctx context.Context, fromDate string) ([]models.Transaction, error)
}

func (m *mockTransactionRepository) FindByProperty(ctx context.Context, propertyID uint, fromDate string) ([]models.Transaction, error) {
	if m.mockFindByProperty != nil {
		return m.mockFindByProperty(ctx, propertyID, fromDate)
	}
	return nil, nil
}

func (m *mockTransactionRepository) FindSince(ctx context.Context, fromDate string) ([]models.Transaction, error) {
	if m.mockFindSince != nil {
		return m.mockFindSince(ctx, fromDate)
	}
	return nil, nil
}

func uintPtr(v uint) *uint { return &v }

func TestWindowStart(t *testing.T) {
	tests := []struct {
		name   string
		asOf   time.Time
		months int
		want   string
	}{
		{"three months mid-quarter", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), 3, "2026-01-01"},
		{"default window", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), 0, "2025-10-01"},
		{"crosses the year boundary", time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), 2, "2025-12-01"},
		{"single month", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), 1, "2026-07-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, windowStart(tt.asOf, tt.months))
		})
	}
}

func TestReportService_PropertyReport(t *testing.T) {
	asOf := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	property := &models.Property{
		ID:      7,
		Address: "113 Maple St",
		Status:  models.PropertyStatusRented,
	}

	propertyRepo := &mockPropertyRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Property, error) {
			assert.Equal(t, uint(7), id)
			return property, nil
		},
	}

	transactionRepo := &mockTransactionRepository{
		mockFindByProperty: func(ctx context.Context, propertyID uint, fromDate string) ([]models.Transaction, error) {
			assert.Equal(t, uint(7), propertyID)
			assert.Equal(t, "2026-01-01", fromDate)
			return []models.Transaction{
				{ID: 1, PropertyID: uintPtr(7), Date: "2026-03-05", Amount: 1500, Category: "Rent", ExpenseType: models.ExpenseTypeOperating},
				{ID: 2, PropertyID: uintPtr(7), Date: "2026-02-10", Amount: -200, Category: "Repairs", ExpenseType: models.ExpenseTypeOperating},
				// Capital entries stay out of the P&L.
				{ID: 3, PropertyID: uintPtr(7), Date: "2026-02-12", Amount: -5000, Category: "Rehab", ExpenseType: models.ExpenseTypeCapital},
				{ID: 4, PropertyID: uintPtr(99), Date: "2026-02-20", Amount: 900, Category: "Rent", ExpenseType: models.ExpenseTypeOperating},
			}, nil
		},
	}

	svc := NewReportService(transactionRepo, propertyRepo, nil, nil, opmetrics.DefaultConfig())

	result, err := svc.PropertyReport(context.Background(), 7, 3, asOf)
	assert.NoError(t, err)
	assert.Equal(t, "113 Maple St", result.Property.Address)

	report := result.Report
	assert.Len(t, report.Months, 3)
	assert.Equal(t, "2026-01", report.Months[0].Month)
	assert.Equal(t, "2026-02", report.Months[1].Month)
	assert.Equal(t, "2026-03", report.Months[2].Month)

	assert.InDelta(t, 200, report.Months[1].TotalExpenses, 0.01)
	assert.InDelta(t, 1500, report.Months[2].TotalIncome, 0.01)

	assert.InDelta(t, 1500, report.Summary.TotalIncome, 0.01)
	assert.InDelta(t, 200, report.Summary.TotalExpenses, 0.01)
	assert.InDelta(t, 1300, report.Summary.NetIncome, 0.01)
	assert.InDelta(t, 1300.0/3, report.Summary.AverageNetIncome, 0.01)

	if assert.NotNil(t, report.LastFullMonth) {
		assert.Equal(t, "2026-02", report.LastFullMonth.Month)
		assert.InDelta(t, -200, report.LastFullMonth.NetIncome, 0.01)
	}
}

func TestReportService_GeneratePortfolioCSV(t *testing.T) {
	asOf := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	propertyRepo := &mockPropertyRepository{
		mockFindActive: func(ctx context.Context) ([]models.Property, error) {
			return []models.Property{
				{ID: 1, Address: "113 Maple St", Status: models.PropertyStatusRented},
				{ID: 2, Address: "8 Offer Rd", Status: models.PropertyStatusSoftOffer},
			}, nil
		},
	}

	transactionRepo := &mockTransactionRepository{
		mockFindSince: func(ctx context.Context, fromDate string) ([]models.Transaction, error) {
			assert.Equal(t, "2026-02-01", fromDate)
			return []models.Transaction{
				{ID: 1, PropertyID: uintPtr(1), Date: "2026-03-02", Amount: 1000, Category: "Rent", ExpenseType: models.ExpenseTypeOperating},
				// Business-level entries land in the synthetic breakdown.
				{ID: 2, PropertyID: nil, Date: "2026-03-04", Amount: -300, Category: "Insurance", ExpenseType: models.ExpenseTypeOperating},
				// Properties still under offer are excluded from the portfolio.
				{ID: 3, PropertyID: uintPtr(2), Date: "2026-03-06", Amount: -450, Category: "Repairs", ExpenseType: models.ExpenseTypeOperating},
			}, nil
		},
	}

	svc := NewReportService(transactionRepo, propertyRepo, nil, nil, opmetrics.DefaultConfig())

	buf, err := svc.GeneratePortfolioCSV(context.Background(), 2, asOf)
	assert.NoError(t, err)

	records, err := csv.NewReader(buf).ReadAll()
	assert.NoError(t, err)

	// The blank separator line is dropped by the CSV reader.
	assert.Len(t, records, 6)
	assert.Equal(t, []string{"Month", "Income", "Expenses", "Net"}, records[0])
	assert.Equal(t, []string{"2026-02", "0.00", "0.00", "0.00"}, records[1])
	assert.Equal(t, []string{"2026-03", "1000.00", "300.00", "700.00"}, records[2])
	assert.Equal(t, []string{"Property", "Income", "Expenses", "Net"}, records[3])
	assert.Equal(t, []string{"113 Maple St", "1000.00", "0.00", "1000.00"}, records[4])
	assert.Equal(t, []string{"Business", "0.00", "300.00", "-300.00"}, records[5])
}

func TestReportService_SendUnitAlertDigests_NoAlerts(t *testing.T) {
	asOf := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	propertyRepo := &mockPropertyRepository{
		mockFindOperating: func(ctx context.Context) ([]models.Property, error) {
			return []models.Property{
				{
					ID:      1,
					Address: "113 Maple St",
					Status:  models.PropertyStatusRented,
					PropertyUnits: []models.PropertyUnit{
						{ID: 1, PropertyID: 1, Rent: 1200, Status: models.UnitStatusOccupied},
					},
				},
			}, nil
		},
	}

	// No vacancies and nobody behind on rent: no digest, no admin lookup.
	userRepo := &mockUserRepository{
		mockFindAdmins: func(ctx context.Context) ([]models.User, error) {
			t.Fatal("FindAdmins should not be called when there are no alerts")
			return nil, nil
		},
	}

	svc := NewReportService(&mockTransactionRepository{}, propertyRepo, userRepo, nil, opmetrics.DefaultConfig())

	err := svc.SendUnitAlertDigests(context.Background(), asOf)
	assert.NoError(t, err)
}
