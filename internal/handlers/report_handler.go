package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentfolio/rentfolio-api/internal/plreport"
	"github.com/rentfolio/rentfolio-api/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
	exportService *services.ExportService
	defaultMonths int
}

func NewReportHandler(reportService *services.ReportService, exportService *services.ExportService, defaultMonths int) *ReportHandler {
	if defaultMonths < 1 {
		defaultMonths = plreport.DefaultWindowMonths
	}
	return &ReportHandler{
		reportService: reportService,
		exportService: exportService,
		defaultMonths: defaultMonths,
	}
}

// parseWindow reads the months query param, defaulting to the configured
// reporting window and clamping nonsense values.
func (h *ReportHandler) parseWindow(c *gin.Context) int {
	months, err := strconv.Atoi(c.DefaultQuery("months", strconv.Itoa(h.defaultMonths)))
	if err != nil || months < 1 {
		return h.defaultMonths
	}
	if months > 60 {
		return 60
	}
	return months
}

// @Summary Property P&L Report
// @Description Monthly income/expense report for one property with operational metrics
// @Tags Reports
// @Produce json
// @Param property_id path int true "Property ID"
// @Param months query int false "Window size in months" default(6)
// @Success 200 {object} services.PropertyReportResult
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /reports/properties/{property_id} [get]
func (h *ReportHandler) PropertyReport(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("property_id"), 10, 32)
	months := h.parseWindow(c)

	result, err := h.reportService.PropertyReport(c.Request.Context(), uint(id), months, time.Now().UTC())
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary Portfolio P&L Report
// @Description Monthly income/expense report across all operating properties plus business-level entries
// @Tags Reports
// @Produce json
// @Param months query int false "Window size in months" default(6)
// @Success 200 {object} models.PortfolioPLReport
// @Security BearerAuth
// @Router /reports/portfolio [get]
func (h *ReportHandler) PortfolioReport(c *gin.Context) {
	months := h.parseWindow(c)

	report, err := h.reportService.PortfolioReport(c.Request.Context(), months, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// @Summary Portfolio CSV
// @Description Download the portfolio P&L report as CSV
// @Tags Reports
// @Produce text/csv
// @Param months query int false "Window size in months" default(6)
// @Success 200 {file} file "portfolio.csv"
// @Security BearerAuth
// @Router /reports/portfolio_csv [get]
func (h *ReportHandler) PortfolioCSV(c *gin.Context) {
	months := h.parseWindow(c)

	buf, err := h.reportService.GeneratePortfolioCSV(c.Request.Context(), months, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=portfolio.csv")
	c.String(http.StatusOK, buf.String())
}

// @Summary Owner Statement PDF
// @Description Download a property owner statement as PDF
// @Tags Reports
// @Produce application/pdf
// @Param property_id path int true "Property ID"
// @Param months query int false "Window size in months" default(6)
// @Success 200 {file} file "statement.pdf"
// @Security BearerAuth
// @Router /reports/properties/{property_id}/statement_pdf [get]
func (h *ReportHandler) OwnerStatementPDF(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("property_id"), 10, 32)
	months := h.parseWindow(c)

	buf, err := h.reportService.GenerateOwnerStatementPDF(c.Request.Context(), uint(id), months, time.Now().UTC())
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=statement_%d.pdf", id))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// @Summary Export Portfolio Snapshot
// @Description Download the portfolio snapshot (P&L plus scores) in various formats
// @Tags Reports
// @Produce application/octet-stream
// @Param format query string true "Report format (csv, xlsx, pdf)"
// @Param months query int false "Window size in months" default(6)
// @Success 200 {file} file "portfolio snapshot"
// @Security BearerAuth
// @Router /reports/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	format := c.Query("format")
	months := h.parseWindow(c)
	asOf := time.Now().UTC()

	var data []byte
	var filename string
	var err error

	switch format {
	case "csv":
		data, filename, err = h.exportService.ExportCSV(c.Request.Context(), months, asOf)
	case "xlsx":
		data, filename, err = h.exportService.ExportXLSX(c.Request.Context(), months, asOf)
	case "pdf":
		data, filename, err = h.exportService.ExportPDF(c.Request.Context(), months, asOf)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid format (csv, xlsx, pdf)"})
		return
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to generate %s: %v", format, err)})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/octet-stream", data)
}
