package repository

import (
	"context"

	"github.com/rentfolio/rentfolio-api/internal/models"
	"gorm.io/gorm"
)

// TransactionRepository defines the interface for transaction data access
type TransactionRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Transaction, error)
	Create(ctx context.Context, transaction *models.Transaction) error
	Update(ctx context.Context, transaction *models.Transaction) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Transaction, int64, error)
	FindByProperty(ctx context.Context, propertyID uint, fromDate string) ([]models.Transaction, error)
	FindSince(ctx context.Context, fromDate string) ([]models.Transaction, error)
	FindBusiness(ctx context.Context, fromDate string) ([]models.Transaction, error)
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) FindByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var transaction models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Property").
		First(&transaction, id).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *transactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *transactionRepository) Update(ctx context.Context, transaction *models.Transaction) error {
	return r.db.WithContext(ctx).Save(transaction).Error
}

func (r *transactionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Transaction{}, id).Error
}

func (r *transactionRepository) List(ctx context.Context, query *ListQuery) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Transaction{})

	// Apply search
	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("category ILIKE ? OR description ILIKE ?", search, search)
	}

	// Apply property filter; "business" selects unassigned entries
	if pid := query.Filters["property_id"]; pid != "" {
		if pid == models.BusinessPropertyID {
			db = db.Where("property_id IS NULL")
		} else {
			db = db.Where("property_id = ?", pid)
		}
	}

	// Apply category filter
	if query.Filters["category"] != "" {
		db = db.Where("category = ?", query.Filters["category"])
	}

	// Apply expense type filter
	if query.Filters["expense_type"] != "" {
		db = db.Where("expense_type = ?", query.Filters["expense_type"])
	}

	// Apply date range filters on the effective reporting date
	if query.Filters["from"] != "" {
		db = db.Where("COALESCE(NULLIF(override_date, ''), date) >= ?", query.Filters["from"])
	}
	if query.Filters["to"] != "" {
		db = db.Where("COALESCE(NULLIF(override_date, ''), date) <= ?", query.Filters["to"])
	}

	// Count total
	db.Count(&total)

	// Apply sorting
	if query.SortBy != "" {
		order := query.SortBy
		if query.SortDir == "desc" {
			order += " DESC"
		}
		db = db.Order(order)
	} else {
		db = db.Order("date DESC")
	}

	// Apply pagination
	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Preload("Property").Find(&transactions).Error
	return transactions, total, err
}

// FindByProperty returns one property's transactions with an effective
// reporting date on or after fromDate (YYYY-MM-DD)
func (r *transactionRepository) FindByProperty(ctx context.Context, propertyID uint, fromDate string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Where("COALESCE(NULLIF(override_date, ''), date) >= ?", fromDate).
		Order("date ASC").
		Find(&transactions).Error
	return transactions, err
}

// FindSince returns every transaction with an effective reporting date on
// or after fromDate (YYYY-MM-DD)
func (r *transactionRepository) FindSince(ctx context.Context, fromDate string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.db.WithContext(ctx).
		Where("COALESCE(NULLIF(override_date, ''), date) >= ?", fromDate).
		Order("date ASC").
		Find(&transactions).Error
	return transactions, err
}

// FindBusiness returns transactions not tied to any property
func (r *transactionRepository) FindBusiness(ctx context.Context, fromDate string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.db.WithContext(ctx).
		Where("property_id IS NULL").
		Where("COALESCE(NULLIF(override_date, ''), date) >= ?", fromDate).
		Order("date ASC").
		Find(&transactions).Error
	return transactions, err
}
