package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/rentfolio/rentfolio-api/internal/models"
	"github.com/rentfolio/rentfolio-api/internal/opmetrics"
	"github.com/rentfolio/rentfolio-api/internal/plreport"
	"github.com/rentfolio/rentfolio-api/internal/repository"
	"github.com/rentfolio/rentfolio-api/pkg/logger"
)

type ReportService struct {
	transactionRepo repository.TransactionRepository
	propertyRepo    repository.PropertyRepository
	userRepo        repository.UserRepository
	emailService    *EmailService
	metricsCfg      opmetrics.Config
}

func NewReportService(
	transactionRepo repository.TransactionRepository,
	propertyRepo repository.PropertyRepository,
	userRepo repository.UserRepository,
	emailService *EmailService,
	metricsCfg opmetrics.Config,
) *ReportService {
	return &ReportService{
		transactionRepo: transactionRepo,
		propertyRepo:    propertyRepo,
		userRepo:        userRepo,
		emailService:    emailService,
		metricsCfg:      metricsCfg,
	}
}

// PropertyReportResult pairs a property's P&L series with its health
// metrics
type PropertyReportResult struct {
	Property models.PropertyResponse   `json:"property"`
	Report   models.PropertyPLReport   `json:"report"`
	Metrics  models.OperationalMetrics `json:"metrics"`
}

// windowStart returns the first day of the oldest month in an n-month
// window ending at asOf, as YYYY-MM-DD
func windowStart(asOf time.Time, n int) string {
	if n <= 0 {
		n = plreport.DefaultWindowMonths
	}
	year, month, _ := asOf.Date()
	return time.Date(year, month-time.Month(n-1), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}

// PropertyReport builds the monthly P&L and operational metrics for one
// property
func (s *ReportService) PropertyReport(ctx context.Context, propertyID uint, months int, asOf time.Time) (*PropertyReportResult, error) {
	property, err := s.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find property: %w", err)
	}

	transactions, err := s.transactionRepo.FindByProperty(ctx, propertyID, windowStart(asOf, months))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	report := plreport.GeneratePropertyReport(transactions, propertyID, property.Address, months, asOf)
	metrics := s.metricsCfg.Calculate(property, &report, asOf)

	return &PropertyReportResult{
		Property: property.ToResponse(),
		Report:   report,
		Metrics:  metrics,
	}, nil
}

// PortfolioReport builds the portfolio-wide monthly P&L with per-property
// breakdowns
func (s *ReportService) PortfolioReport(ctx context.Context, months int, asOf time.Time) (*models.PortfolioPLReport, error) {
	properties, err := s.propertyRepo.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch properties: %w", err)
	}

	transactions, err := s.transactionRepo.FindSince(ctx, windowStart(asOf, months))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	report := plreport.GeneratePortfolioReport(transactions, properties, months, asOf)
	return &report, nil
}

// GeneratePortfolioCSV generates a CSV of the portfolio monthly series
// followed by per-property totals
func (s *ReportService) GeneratePortfolioCSV(ctx context.Context, months int, asOf time.Time) (*bytes.Buffer, error) {
	report, err := s.PortfolioReport(ctx, months, asOf)
	if err != nil {
		return nil, err
	}

	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	header := []string{"Month", "Income", "Expenses", "Net"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, m := range report.Months {
		record := []string{
			m.Month,
			fmt.Sprintf("%.2f", m.TotalIncome),
			fmt.Sprintf("%.2f", m.TotalExpenses),
			fmt.Sprintf("%.2f", m.NetIncome),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	if err := w.Write([]string{}); err != nil {
		return nil, err
	}
	if err := w.Write([]string{"Property", "Income", "Expenses", "Net"}); err != nil {
		return nil, err
	}
	for _, bd := range report.Breakdowns {
		record := []string{
			bd.Address,
			fmt.Sprintf("%.2f", bd.TotalIncome),
			fmt.Sprintf("%.2f", bd.TotalExpenses),
			fmt.Sprintf("%.2f", bd.NetIncome),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b, nil
}

// Helper to generate PDF from HTML template
func (s *ReportService) generatePDF(templateName string, data interface{}) (*bytes.Buffer, error) {
	// Try path relative to project root (Prod)
	tmplPath := fmt.Sprintf("internal/services/templates/reports/%s", templateName)
	if _, err := os.Stat(tmplPath); os.IsNotExist(err) {
		// Try path relative to package (Test)
		tmplPath = fmt.Sprintf("templates/reports/%s", templateName)
	}

	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s (path: %s): %w", templateName, tmplPath, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create pdf generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(buf.Bytes()))
	page.EnableLocalFileAccess.Set(true)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create pdf: %w", err)
	}

	return pdfg.Buffer(), nil
}

// GenerateOwnerStatementPDF generates a PDF monthly statement for one
// property
func (s *ReportService) GenerateOwnerStatementPDF(ctx context.Context, propertyID uint, months int, asOf time.Time) (*bytes.Buffer, error) {
	result, err := s.PropertyReport(ctx, propertyID, months, asOf)
	if err != nil {
		return nil, err
	}

	type MonthRow struct {
		Month    string
		Income   string
		Expenses string
		Net      string
	}

	var rows []MonthRow
	for _, m := range result.Report.Months {
		rows = append(rows, MonthRow{
			Month:    m.Month,
			Income:   fmt.Sprintf("%.2f", m.TotalIncome),
			Expenses: fmt.Sprintf("%.2f", m.TotalExpenses),
			Net:      fmt.Sprintf("%.2f", m.NetIncome),
		})
	}

	data := map[string]interface{}{
		"Address":       result.Property.Address,
		"GeneratedDate": asOf.Format("02/01/2006"),
		"Months":        rows,
		"TotalIncome":   fmt.Sprintf("%.2f", result.Report.Summary.TotalIncome),
		"TotalExpenses": fmt.Sprintf("%.2f", result.Report.Summary.TotalExpenses),
		"NetIncome":     fmt.Sprintf("%.2f", result.Report.Summary.NetIncome),
		"AverageNet":    fmt.Sprintf("%.2f", result.Report.Summary.AverageNetIncome),
		"OccupancyRate": fmt.Sprintf("%d%%", result.Metrics.OccupancyRate),
		"VacantUnits":   len(result.Metrics.VacantUnits),
		"BehindUnits":   len(result.Metrics.DelinquentUnits),
	}

	return s.generatePDF("owner_statement.html", data)
}

// SendUnitAlertDigests emails admins the vacant and behind-on-rent units
// across operating properties. Run daily.
func (s *ReportService) SendUnitAlertDigests(ctx context.Context, asOf time.Time) error {
	properties, err := s.propertyRepo.FindOperating(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch operating properties: %w", err)
	}

	var alerts []UnitAlertData
	for i := range properties {
		p := &properties[i]
		vacant := opmetrics.VacantUnits(p.PropertyUnits, asOf)
		behind := s.metricsCfg.DelinquentUnits(p.PropertyUnits, asOf)
		for _, a := range vacant {
			alerts = append(alerts, UnitAlertData{
				Address:      p.Address,
				UnitNumber:   a.UnitNumber,
				Status:       a.Status,
				DaysInStatus: a.DaysInStatus,
				AmountOwed:   fmt.Sprintf("%.2f", a.AmountOwed),
			})
		}
		for _, a := range behind {
			alerts = append(alerts, UnitAlertData{
				Address:      p.Address,
				UnitNumber:   a.UnitNumber,
				Status:       a.Status,
				DaysInStatus: a.DaysInStatus,
				AmountOwed:   fmt.Sprintf("%.2f", a.AmountOwed),
			})
		}
	}

	if len(alerts) == 0 {
		return nil
	}

	admins, err := s.userRepo.FindAdmins(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch admins: %w", err)
	}
	for i := range admins {
		if err := s.emailService.SendUnitAlertDigest(ctx, &admins[i], alerts); err != nil {
			logger.Error(fmt.Sprintf("[ReportService] Failed to send unit alert digest to %s: %v", admins[i].Email, err))
		}
	}
	return nil
}

// SendMonthlySummaries emails admins the previous month's portfolio P&L.
// Run on the first days of each month.
func (s *ReportService) SendMonthlySummaries(ctx context.Context, asOf time.Time) error {
	year, month, _ := asOf.Date()
	lastMonth := time.Date(year, month-1, 1, 0, 0, 0, 0, time.UTC)

	report, err := s.PortfolioReport(ctx, 1, lastMonth)
	if err != nil {
		return err
	}

	admins, err := s.userRepo.FindAdmins(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch admins: %w", err)
	}

	monthKey := lastMonth.Format("2006-01")
	for i := range admins {
		if err := s.emailService.SendMonthlySummary(ctx, &admins[i], monthKey, report.Summary); err != nil {
			logger.Error(fmt.Sprintf("[ReportService] Failed to send monthly summary to %s: %v", admins[i].Email, err))
		}
	}
	return nil
}
