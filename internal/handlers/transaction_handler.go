package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rentfolio/rentfolio-api/internal/middleware"
	"github.com/rentfolio/rentfolio-api/internal/models"
	"github.com/rentfolio/rentfolio-api/internal/repository"
	"github.com/rentfolio/rentfolio-api/internal/services"
	"github.com/rentfolio/rentfolio-api/internal/storage"
)

type TransactionHandler struct {
	transactionService *services.TransactionService
	storage            *storage.LocalStorage
}

func NewTransactionHandler(transactionService *services.TransactionService, storage *storage.LocalStorage) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, storage: storage}
}

// @Summary List Transactions
// @Description Get a paginated list of transactions
// @Tags Transactions
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param property_id query string false "Filter by property ID, or 'business' for business-level entries"
// @Param category query string false "Filter by category"
// @Param expense_type query string false "Filter by expense type (Operating, Capital)"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /transactions [get]
func (h *TransactionHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.Filters["property_id"] = c.Query("property_id")
	query.Filters["category"] = c.Query("category")
	query.Filters["expense_type"] = c.Query("expense_type")
	query.Filters["from"] = c.Query("from")
	query.Filters["to"] = c.Query("to")

	// Parse sort parameter (format: field-direction)
	if sort := c.Query("sort"); sort != "" {
		parts := strings.Split(sort, "-")
		query.SortBy = parts[0]
		if len(parts) > 1 {
			query.SortDir = parts[1]
		}
	}

	transactions, total, err := h.transactionService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []models.TransactionResponse
	for _, t := range transactions {
		responses = append(responses, t.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Get Transaction
// @Description Get a transaction by ID
// @Tags Transactions
// @Accept json
// @Produce json
// @Param transaction_id path int true "Transaction ID"
// @Success 200 {object} models.TransactionResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /transactions/{transaction_id} [get]
func (h *TransactionHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("transaction_id"), 10, 32)
	transaction, err := h.transactionService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": transaction.ToResponse()})
}

// @Summary Create Transaction
// @Description Record an income or expense entry; negative amounts are expenses
// @Tags Transactions
// @Accept json
// @Produce json
// @Param request body models.Transaction true "Transaction Data"
// @Success 201 {object} models.TransactionResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var transaction models.Transaction
	if err := BindNestedOrFlat(c, "transaction", &transaction); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.transactionService.Create(c.Request.Context(), &transaction, middleware.GetUserID(c)); err != nil {
		if errors.Is(err, services.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction.ToResponse()})
}

// @Summary Update Transaction
// @Description Update a transaction entry
// @Tags Transactions
// @Accept json
// @Produce json
// @Param transaction_id path int true "Transaction ID"
// @Param request body models.Transaction true "Transaction Data"
// @Success 200 {object} models.TransactionResponse
// @Security BearerAuth
// @Router /transactions/{transaction_id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("transaction_id"), 10, 32)
	var transaction models.Transaction
	if err := BindNestedOrFlat(c, "transaction", &transaction); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	transaction.ID = uint(id)

	if err := h.transactionService.Update(c.Request.Context(), &transaction, middleware.GetUserID(c)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		if errors.Is(err, services.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction.ToResponse()})
}

// @Summary Delete Transaction
// @Description Delete a transaction and its receipt
// @Tags Transactions
// @Accept json
// @Produce json
// @Param transaction_id path int true "Transaction ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /transactions/{transaction_id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("transaction_id"), 10, 32)
	if err := h.transactionService.Delete(c.Request.Context(), uint(id), middleware.GetUserID(c)); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}

// @Summary Upload Receipt
// @Description Attach a receipt image/pdf to a transaction
// @Tags Transactions
// @Accept multipart/form-data
// @Produce json
// @Param transaction_id path int true "Transaction ID"
// @Param receipt formData file true "Receipt File"
// @Success 200 {object} models.TransactionResponse
// @Security BearerAuth
// @Router /transactions/{transaction_id}/receipt [post]
func (h *TransactionHandler) UploadReceipt(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("transaction_id"), 10, 32)

	file, header, err := c.Request.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}
	defer file.Close()

	transaction, err := h.transactionService.AttachReceipt(c.Request.Context(), uint(id), file, header, middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction.ToResponse(), "message": "Receipt uploaded successfully"})
}

// @Summary Download Receipt
// @Description Download a transaction's receipt
// @Tags Transactions
// @Produce application/octet-stream
// @Param transaction_id path int true "Transaction ID"
// @Success 200 {file} file "receipt"
// @Security BearerAuth
// @Router /transactions/{transaction_id}/receipt [get]
func (h *TransactionHandler) DownloadReceipt(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("transaction_id"), 10, 32)
	transaction, err := h.transactionService.FindByID(c.Request.Context(), uint(id))
	if err != nil || transaction.ReceiptPath == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
		return
	}

	fullPath, err := h.storage.SafeFullPath(*transaction.ReceiptPath)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
		return
	}

	c.File(fullPath)
}
