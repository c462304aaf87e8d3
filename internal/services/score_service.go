package services

import (
	"context"
	"fmt"

	"github.com/rentfolio/rentfolio-api/internal/models"
	"github.com/rentfolio/rentfolio-api/internal/repository"
	"github.com/rentfolio/rentfolio-api/internal/scoring"
	"github.com/rentfolio/rentfolio-api/pkg/logger"
)

// ScoreService computes investment scores on demand. Scores are never
// persisted; they are recomputed from the property's current numbers.
type ScoreService struct {
	propertyRepo    repository.PropertyRepository
	notificationSvc *NotificationService
	cfg             scoring.Config
}

// NewScoreService creates a new score service
func NewScoreService(propertyRepo repository.PropertyRepository, notificationSvc *NotificationService, cfg scoring.Config) *ScoreService {
	return &ScoreService{
		propertyRepo:    propertyRepo,
		notificationSvc: notificationSvc,
		cfg:             cfg,
	}
}

// ScoreResult is the full scoring picture for one property
type ScoreResult struct {
	PropertyID     uint                  `json:"property_id"`
	Address        string                `json:"address"`
	HoldScore      int                   `json:"hold_score"`
	FlipScore      int                   `json:"flip_score"`
	Hold           scoring.HoldBreakdown `json:"hold"`
	Flip           scoring.FlipBreakdown `json:"flip"`
	RentRatio      float64               `json:"rent_ratio"`
	ARVRatio       float64               `json:"arv_ratio"`
	Cashflow       float64               `json:"monthly_cashflow"`
	CashflowUnit   float64               `json:"cashflow_per_unit"`
	Financing      FinancingSnapshot     `json:"financing"`
	PerfectRent    float64               `json:"perfect_rent"`
	PerfectARV     float64               `json:"perfect_arv"`
	Recommendation string                `json:"recommendation"`
}

// FinancingSnapshot is the financing model evaluated for one property
type FinancingSnapshot struct {
	TotalInvestment  float64 `json:"total_investment"`
	DownPayment      float64 `json:"down_payment"`
	LoanAmount       float64 `json:"loan_amount"`
	MonthlyMortgage  float64 `json:"monthly_mortgage"`
	CashToPullOut    float64 `json:"cash_to_pull_out"`
	NewLoan          float64 `json:"new_loan"`
	NewLoanPctOfARV  float64 `json:"new_loan_pct_of_arv"`
	HomeEquity       float64 `json:"home_equity"`
	RefinanceLoan    float64 `json:"refinance_loan"`
	RefinanceEquity  float64 `json:"refinance_equity"`
	RefinanceCashOut float64 `json:"refinance_cash_out"`
}

// Recommendation thresholds
const (
	strongScore = 8
	weakScore   = 4
)

// Score computes hold and flip scores for a property
func (s *ScoreService) Score(ctx context.Context, propertyID uint) (*ScoreResult, error) {
	property, err := s.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find property: %w", err)
	}

	result := s.scoreProperty(property)
	return result, nil
}

func (s *ScoreService) scoreProperty(property *models.Property) *ScoreResult {
	p := scoring.PropertyFinancials{
		OfferPrice:    property.OfferPrice,
		RehabCosts:    property.RehabCosts,
		PotentialRent: property.PotentialRent,
		ARV:           property.ARV,
		Units:         property.UnitCount(),
	}

	hold := s.cfg.HoldScoreBreakdown(p)
	flip := s.cfg.FlipScoreBreakdown(p)

	result := &ScoreResult{
		PropertyID:   property.ID,
		Address:      property.Address,
		HoldScore:    hold.TotalScore,
		FlipScore:    flip.TotalScore,
		Hold:         hold,
		Flip:         flip,
		RentRatio:    scoring.RentRatio(p.PotentialRent, p.OfferPrice, p.RehabCosts),
		ARVRatio:     scoring.ARVRatio(p.OfferPrice, p.RehabCosts, p.ARV),
		Cashflow:     s.cfg.MonthlyCashflow(p),
		CashflowUnit: s.cfg.CashflowPerUnit(p),
		Financing: FinancingSnapshot{
			TotalInvestment:  p.TotalInvestment(),
			DownPayment:      s.cfg.DownPayment(p.OfferPrice, p.RehabCosts),
			LoanAmount:       s.cfg.LoanAmount(p.OfferPrice, p.RehabCosts),
			MonthlyMortgage:  s.cfg.MonthlyMortgagePayment(s.cfg.LoanAmount(p.OfferPrice, p.RehabCosts)),
			CashToPullOut:    s.cfg.CashToPullOut(p.OfferPrice, p.RehabCosts),
			NewLoan:          s.cfg.NewLoan(p.OfferPrice, p.RehabCosts),
			NewLoanPctOfARV:  s.cfg.NewLoanPercentOfARV(p.OfferPrice, p.RehabCosts, p.ARV),
			HomeEquity:       s.cfg.HomeEquity(p.OfferPrice, p.RehabCosts, p.ARV),
			RefinanceLoan:    s.cfg.RefinanceLoan(p.ARV),
			RefinanceEquity:  s.cfg.RefinanceEquity(p.ARV),
			RefinanceCashOut: s.cfg.RefinanceCashOut(p.OfferPrice, p.RehabCosts, p.ARV),
		},
		PerfectRent: s.cfg.PerfectRentForHoldScore(p.OfferPrice, p.RehabCosts, p.ARV, p.Units),
		PerfectARV:  s.cfg.PerfectARVForFlipScore(p.OfferPrice, p.RehabCosts),
	}
	result.Recommendation = recommend(hold.TotalScore, flip.TotalScore)
	return result
}

// recommend labels a property by its stronger strategy
func recommend(hold, flip int) string {
	switch {
	case hold >= strongScore && flip >= strongScore:
		return "strong_both"
	case hold >= strongScore:
		return "hold"
	case flip >= strongScore:
		return "flip"
	case hold <= weakScore && flip <= weakScore:
		return "pass"
	case hold >= flip:
		return "lean_hold"
	default:
		return "lean_flip"
	}
}

// ScanPortfolio recomputes scores for every active property and notifies
// admins about weak holds. Runs as a scheduled job.
func (s *ScoreService) ScanPortfolio(ctx context.Context) error {
	logger.Info("[ScoreService] Scanning portfolio scores...")

	properties, err := s.propertyRepo.FindActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch active properties: %w", err)
	}

	flagged := 0
	for i := range properties {
		property := &properties[i]
		result := s.scoreProperty(property)

		if result.HoldScore > weakScore || !property.IsOperating() {
			continue
		}
		flagged++

		title := fmt.Sprintf("Low hold score: %s", property.Address)
		message := fmt.Sprintf("%s scores %d/10 as a rental (cashflow %.2f/unit). Consider repricing rent or selling.",
			property.Address, result.HoldScore, result.CashflowUnit)
		if err := s.notificationSvc.NotifyAdmins(ctx, title, message, models.NotificationTypeLowHoldScore); err != nil {
			logger.Error(fmt.Sprintf("[ScoreService] Error notifying admins for property %d: %v", property.ID, err))
		}
	}

	logger.Info(fmt.Sprintf("[ScoreService] Scanned %d properties, flagged %d", len(properties), flagged))
	return nil
}
