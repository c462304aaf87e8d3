package repository

import (
	"context"

	"github.com/rentfolio/rentfolio-api/internal/models"
	"gorm.io/gorm"
)

// PropertyRepository defines the interface for property data access
type PropertyRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Property, error)
	Create(ctx context.Context, property *models.Property) error
	Update(ctx context.Context, property *models.Property) error
	Delete(ctx context.Context, id uint) error
	Archive(ctx context.Context, id uint) error
	Unarchive(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Property, int64, error)
	FindOperating(ctx context.Context) ([]models.Property, error)
	FindActive(ctx context.Context) ([]models.Property, error)
}

type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new property repository
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) FindByID(ctx context.Context, id uint) (*models.Property, error) {
	var property models.Property
	err := r.db.WithContext(ctx).
		Preload("PropertyUnits", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("PropertyUnits.StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("date_start ASC")
		}).
		First(&property, id).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) Create(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).Create(property).Error
}

func (r *propertyRepository) Update(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).Save(property).Error
}

func (r *propertyRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Property{}, id).Error
}

func (r *propertyRepository) Archive(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Property{}).
		Where("id = ?", id).
		Update("archived", true).Error
}

func (r *propertyRepository) Unarchive(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Property{}).
		Where("id = ?", id).
		Update("archived", false).Error
}

func (r *propertyRepository) List(ctx context.Context, query *ListQuery) ([]models.Property, int64, error) {
	var properties []models.Property
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Property{})

	// Apply search
	if query.Search != "" {
		db = db.Where("address ILIKE ?", "%"+query.Search+"%")
	}

	// Apply status filter
	if query.Filters["status"] != "" {
		db = db.Where("status = ?", query.Filters["status"])
	}

	// Archived properties are hidden unless asked for
	switch query.Filters["archived"] {
	case "true":
		db = db.Where("archived = ?", true)
	case "all":
	default:
		db = db.Where("archived = ?", false)
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
		db = db.Order("created_at DESC")
	}

	// Apply pagination
	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Preload("PropertyUnits").Find(&properties).Error
	return properties, total, err
}

// FindOperating returns rented, non-archived properties with their units
// and status history loaded
func (r *propertyRepository) FindOperating(ctx context.Context) ([]models.Property, error) {
	var properties []models.Property
	err := r.db.WithContext(ctx).
		Where("status = ? AND archived = ?", models.PropertyStatusRented, false).
		Preload("PropertyUnits", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("PropertyUnits.StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("date_start ASC")
		}).
		Find(&properties).Error
	return properties, err
}

// FindActive returns all non-archived properties
func (r *propertyRepository) FindActive(ctx context.Context) ([]models.Property, error) {
	var properties []models.Property
	err := r.db.WithContext(ctx).
		Where("archived = ?", false).
		Preload("PropertyUnits").
		Find(&properties).Error
	return properties, err
}
