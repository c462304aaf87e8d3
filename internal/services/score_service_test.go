package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rentfolio/rentfolio-api/internal/models"
	"github.com/rentfolio/rentfolio-api/internal/repository"
	"github.com/rentfolio/rentfolio-api/internal/scoring"
	"github.com/rentfolio/rentfolio-api/pkg/logger"
	"github.com/stretchr/testify/assert"
)

// Mock PropertyRepository (using embedding to avoid implementing all methods)
type mockPropertyRepository struct {
	repository.PropertyRepository
	mockFindByID      func(ctx context.Context, id uint) (*models.Property, error)
	mockFindActive    func(ctx context.Context) ([]models.Property, error)
	mockFindOperating func(ctx context.Context) ([]models.Property, error)
}

func (m *mockPropertyRepository) FindByID(ctx context.Context, id uint) (*models.Property, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, nil
}

func (m *mockPropertyRepository) FindActive(ctx context.Context) ([]models.Property, error) {
	if m.mockFindActive != nil {
		return m.mockFindActive(ctx)
	}
	return nil, nil
}

func (m *mockPropertyRepository) FindOperating(ctx context.Context) ([]models.Property, error) {
	if m.mockFindOperating != nil {
		return m.mockFindOperating(ctx)
	}
	return nil, nil
}

// Mock UserRepository
type mockUserRepository struct {
	repository.UserRepository
	mockFindAdmins func(ctx context.Context) ([]models.User, error)
}

func (m *mockUserRepository) FindAdmins(ctx context.Context) ([]models.User, error) {
	if m.mockFindAdmins != nil {
		return m.mockFindAdmins(ctx)
	}
	return nil, nil
}

// Mock NotificationRepository
type mockNotificationRepository struct {
	repository.NotificationRepository
	mockCreate func(ctx context.Context, notification *models.Notification) error
}

func (m *mockNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, notification)
	}
	return nil
}

func TestScoreService_Score(t *testing.T) {
	// 100k offer + 20k rehab, renting at 1800 with a 160k ARV. Cashflow is
	// 1800 - 180 management - 200 taxes - 75 reserves - 598.77 mortgage.
	property := &models.Property{
		ID:            42,
		Address:       "113 Maple St",
		Status:        models.PropertyStatusRented,
		OfferPrice:    100000,
		RehabCosts:    20000,
		PotentialRent: 1800,
		ARV:           160000,
	}

	propertyRepo := &mockPropertyRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Property, error) {
			assert.Equal(t, uint(42), id)
			return property, nil
		},
	}

	svc := NewScoreService(propertyRepo, nil, scoring.DefaultConfig())

	result, err := svc.Score(context.Background(), 42)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), result.PropertyID)
	assert.Equal(t, "113 Maple St", result.Address)

	// Full cashflow band (746.23/unit) plus the 1% rent-ratio bonus.
	assert.Equal(t, 10, result.HoldScore)
	assert.Equal(t, 8, result.Hold.CashflowScore)
	assert.Equal(t, 2, result.Hold.RentRatioScore)
	assert.InDelta(t, 746.23, result.Cashflow, 0.05)
	assert.InDelta(t, 746.23, result.CashflowUnit, 0.05)
	assert.InDelta(t, 0.015, result.RentRatio, 0.0001)

	// 75% of ARV is 10 points over the top band: two deductions. Equity
	// after the buffer refinance is 60k, one bonus point.
	assert.Equal(t, 9, result.FlipScore)
	assert.Equal(t, 8, result.Flip.ARVRatioScore)
	assert.Equal(t, 1, result.Flip.EquityScore)
	assert.InDelta(t, 0.75, result.ARVRatio, 0.0001)

	assert.Equal(t, "strong_both", result.Recommendation)

	fin := result.Financing
	assert.InDelta(t, 120000, fin.TotalInvestment, 0.01)
	assert.InDelta(t, 30000, fin.DownPayment, 0.01)
	assert.InDelta(t, 90000, fin.LoanAmount, 0.01)
	assert.InDelta(t, 598.77, fin.MonthlyMortgage, 0.05)
	assert.InDelta(t, 10000, fin.CashToPullOut, 0.01)
	assert.InDelta(t, 100000, fin.NewLoan, 0.01)
	assert.InDelta(t, 0.625, fin.NewLoanPctOfARV, 0.0001)
	assert.InDelta(t, 60000, fin.HomeEquity, 0.01)
	assert.InDelta(t, 120000, fin.RefinanceLoan, 0.01)
	assert.InDelta(t, 40000, fin.RefinanceEquity, 0.01)
	assert.InDelta(t, 30000, fin.RefinanceCashOut, 0.01)

	// The rent-ratio target (1% of 120k) dominates the cashflow target here.
	assert.InDelta(t, 1200, result.PerfectRent, 0.01)
	assert.InDelta(t, 184615.39, result.PerfectARV, 0.01)
}

func TestScoreService_Score_PropertyNotFound(t *testing.T) {
	propertyRepo := &mockPropertyRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Property, error) {
			return nil, errors.New("record not found")
		},
	}

	svc := NewScoreService(propertyRepo, nil, scoring.DefaultConfig())

	result, err := svc.Score(context.Background(), 999)
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "failed to find property")
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name string
		hold int
		flip int
		want string
	}{
		{"both strong", 9, 9, "strong_both"},
		{"both at threshold", 8, 8, "strong_both"},
		{"strong hold only", 9, 5, "hold"},
		{"strong flip only", 3, 8, "flip"},
		{"both weak", 3, 4, "pass"},
		{"middling, hold ahead", 6, 5, "lean_hold"},
		{"middling, tied", 6, 6, "lean_hold"},
		{"middling, flip ahead", 5, 7, "lean_flip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recommend(tt.hold, tt.flip))
		})
	}
}

func TestScoreService_ScanPortfolio(t *testing.T) {
	logger.Setup("test")

	weakRental := models.Property{
		ID:            1,
		Address:       "8 Losing Ln",
		Status:        models.PropertyStatusRented,
		OfferPrice:    100000,
		RehabCosts:    20000,
		PotentialRent: 500,
		ARV:           160000,
	}
	strongRental := models.Property{
		ID:            2,
		Address:       "113 Maple St",
		Status:        models.PropertyStatusRented,
		OfferPrice:    100000,
		RehabCosts:    20000,
		PotentialRent: 1800,
		ARV:           160000,
	}
	// Same weak numbers, but still in the pipeline: no alert.
	weakOpportunity := models.Property{
		ID:            3,
		Address:       "5 Pending Pl",
		Status:        models.PropertyStatusOpportunity,
		OfferPrice:    100000,
		RehabCosts:    20000,
		PotentialRent: 500,
		ARV:           160000,
	}

	propertyRepo := &mockPropertyRepository{
		mockFindActive: func(ctx context.Context) ([]models.Property, error) {
			return []models.Property{weakRental, strongRental, weakOpportunity}, nil
		},
	}
	userRepo := &mockUserRepository{
		mockFindAdmins: func(ctx context.Context) ([]models.User, error) {
			return []models.User{{ID: 10}, {ID: 11}}, nil
		},
	}

	var created []models.Notification
	notificationRepo := &mockNotificationRepository{
		mockCreate: func(ctx context.Context, notification *models.Notification) error {
			created = append(created, *notification)
			return nil
		},
	}

	notificationSvc := NewNotificationService(notificationRepo, userRepo)
	svc := NewScoreService(propertyRepo, notificationSvc, scoring.DefaultConfig())

	err := svc.ScanPortfolio(context.Background())
	assert.NoError(t, err)

	// Only the weak rental is flagged, once per admin.
	assert.Len(t, created, 2)
	assert.Equal(t, uint(10), created[0].UserID)
	assert.Equal(t, uint(11), created[1].UserID)
	for _, n := range created {
		assert.Contains(t, n.Title, "8 Losing Ln")
		assert.NotNil(t, n.NotificationType)
		assert.Equal(t, models.NotificationTypeLowHoldScore, *n.NotificationType)
	}
}

func TestScoreService_ScanPortfolio_RepoError(t *testing.T) {
	logger.Setup("test")

	propertyRepo := &mockPropertyRepository{
		mockFindActive: func(ctx context.Context) ([]models.Property, error) {
			return nil, errors.New("connection refused")
		},
	}

	svc := NewScoreService(propertyRepo, nil, scoring.DefaultConfig())

	err := svc.ScanPortfolio(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch active properties")
}
