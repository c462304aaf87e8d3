package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/rentfolio/rentfolio-api/internal/models"
	"github.com/rentfolio/rentfolio-api/internal/repository"
	"github.com/xuri/excelize/v2"
)

type ExportService struct {
	reportSvc    *ReportService
	scoreSvc     *ScoreService
	propertyRepo repository.PropertyRepository
}

func NewExportService(reportSvc *ReportService, scoreSvc *ScoreService, propertyRepo repository.PropertyRepository) *ExportService {
	return &ExportService{
		reportSvc:    reportSvc,
		scoreSvc:     scoreSvc,
		propertyRepo: propertyRepo,
	}
}

// snapshotRow is one property's line in a portfolio export
type snapshotRow struct {
	Address   string
	Status    string
	HoldScore int
	FlipScore int
	Cashflow  float64
	NetIncome float64
}

// portfolioSnapshot gathers the export data: portfolio summary plus one
// row per active property with current scores
func (s *ExportService) portfolioSnapshot(ctx context.Context, months int, asOf time.Time) (*models.PortfolioPLReport, []snapshotRow, error) {
	report, err := s.reportSvc.PortfolioReport(ctx, months, asOf)
	if err != nil {
		return nil, nil, err
	}

	properties, err := s.propertyRepo.FindActive(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch properties: %w", err)
	}

	netByID := make(map[string]float64, len(report.Breakdowns))
	for _, bd := range report.Breakdowns {
		netByID[bd.PropertyID] = bd.NetIncome
	}

	rows := make([]snapshotRow, 0, len(properties))
	for i := range properties {
		property := &properties[i]
		result := s.scoreSvc.scoreProperty(property)
		rows = append(rows, snapshotRow{
			Address:   property.Address,
			Status:    property.Status,
			HoldScore: result.HoldScore,
			FlipScore: result.FlipScore,
			Cashflow:  result.Cashflow,
			NetIncome: netByID[fmt.Sprintf("%d", property.ID)],
		})
	}
	return report, rows, nil
}

func (s *ExportService) ExportCSV(ctx context.Context, months int, asOf time.Time) ([]byte, string, error) {
	report, rows, err := s.portfolioSnapshot(ctx, months, asOf)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"Portfolio Report", asOf.Format("2006-01-02 15:04")})
	_ = writer.Write([]string{""})

	_ = writer.Write([]string{"Summary"})
	_ = writer.Write([]string{"Metric", "Value"})
	_ = writer.Write([]string{"Total Income", fmt.Sprintf("%.2f", report.Summary.TotalIncome)})
	_ = writer.Write([]string{"Total Expenses", fmt.Sprintf("%.2f", report.Summary.TotalExpenses)})
	_ = writer.Write([]string{"Net Income", fmt.Sprintf("%.2f", report.Summary.NetIncome)})
	_ = writer.Write([]string{"Average Net / Month", fmt.Sprintf("%.2f", report.Summary.AverageNetIncome)})
	_ = writer.Write([]string{""})

	_ = writer.Write([]string{"Properties"})
	_ = writer.Write([]string{"Address", "Status", "Hold Score", "Flip Score", "Projected Cashflow", "Net Income"})
	for _, row := range rows {
		_ = writer.Write([]string{
			row.Address,
			row.Status,
			fmt.Sprintf("%d", row.HoldScore),
			fmt.Sprintf("%d", row.FlipScore),
			fmt.Sprintf("%.2f", row.Cashflow),
			fmt.Sprintf("%.2f", row.NetIncome),
		})
	}

	writer.Flush()

	filename := fmt.Sprintf("portfolio_report_%s.csv", asOf.Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func (s *ExportService) ExportXLSX(ctx context.Context, months int, asOf time.Time) ([]byte, string, error) {
	report, rows, err := s.portfolioSnapshot(ctx, months, asOf)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Portfolio"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", "Portfolio Report")
	_ = f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	_ = f.SetCellValue(sheet, "A3", "Summary")
	_ = f.SetCellValue(sheet, "A4", "Metric")
	_ = f.SetCellValue(sheet, "B4", "Value")

	_ = f.SetCellValue(sheet, "A5", "Total Income")
	_ = f.SetCellValue(sheet, "B5", report.Summary.TotalIncome)
	_ = f.SetCellValue(sheet, "A6", "Total Expenses")
	_ = f.SetCellValue(sheet, "B6", report.Summary.TotalExpenses)
	_ = f.SetCellValue(sheet, "A7", "Net Income")
	_ = f.SetCellValue(sheet, "B7", report.Summary.NetIncome)
	_ = f.SetCellValue(sheet, "A8", "Average Net / Month")
	_ = f.SetCellValue(sheet, "B8", report.Summary.AverageNetIncome)

	_ = f.SetCellValue(sheet, "A10", "Properties")
	headers := []string{"Address", "Status", "Hold Score", "Flip Score", "Projected Cashflow", "Net Income"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 11)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for r, row := range rows {
		values := []interface{}{row.Address, row.Status, row.HoldScore, row.FlipScore, row.Cashflow, row.NetIncome}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, 12+r)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("portfolio_report_%s.xlsx", asOf.Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func (s *ExportService) ExportPDF(ctx context.Context, months int, asOf time.Time) ([]byte, string, error) {
	report, rows, err := s.portfolioSnapshot(ctx, months, asOf)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Portfolio Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Summary")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(60, 10, "Total Income:")
	pdf.Cell(40, 10, fmt.Sprintf("%.2f USD", report.Summary.TotalIncome))
	pdf.Ln(6)

	pdf.Cell(60, 10, "Total Expenses:")
	pdf.Cell(40, 10, fmt.Sprintf("%.2f USD", report.Summary.TotalExpenses))
	pdf.Ln(6)

	pdf.Cell(60, 10, "Net Income:")
	pdf.Cell(40, 10, fmt.Sprintf("%.2f USD", report.Summary.NetIncome))
	pdf.Ln(6)

	pdf.Cell(60, 10, "Average Net / Month:")
	pdf.Cell(40, 10, fmt.Sprintf("%.2f USD", report.Summary.AverageNetIncome))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Properties")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		pdf.Cell(80, 8, row.Address)
		pdf.Cell(30, 8, row.Status)
		pdf.Cell(40, 8, fmt.Sprintf("Hold %d / Flip %d", row.HoldScore, row.FlipScore))
		pdf.Cell(30, 8, fmt.Sprintf("%.2f", row.NetIncome))
		pdf.Ln(6)
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("portfolio_report_%s.pdf", asOf.Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
