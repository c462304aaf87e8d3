package repository

import (
	"context"
	"time"

	"github.com/rentfolio/rentfolio-api/internal/models"
	"gorm.io/gorm"
)

// UnitRepository defines the interface for property unit data access
type UnitRepository interface {
	FindByID(ctx context.Context, id uint) (*models.PropertyUnit, error)
	FindByProperty(ctx context.Context, propertyID uint) ([]models.PropertyUnit, error)
	Create(ctx context.Context, unit *models.PropertyUnit) error
	Update(ctx context.Context, unit *models.PropertyUnit) error
	Delete(ctx context.Context, id uint) error
	ChangeStatus(ctx context.Context, unit *models.PropertyUnit, status string, at time.Time) error
}

type unitRepository struct {
	db *gorm.DB
}

// NewUnitRepository creates a new unit repository
func NewUnitRepository(db *gorm.DB) UnitRepository {
	return &unitRepository{db: db}
}

func (r *unitRepository) FindByID(ctx context.Context, id uint) (*models.PropertyUnit, error) {
	var unit models.PropertyUnit
	err := r.db.WithContext(ctx).
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("date_start ASC")
		}).
		First(&unit, id).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *unitRepository) FindByProperty(ctx context.Context, propertyID uint) ([]models.PropertyUnit, error) {
	var units []models.PropertyUnit
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("id ASC").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("date_start ASC")
		}).
		Find(&units).Error
	return units, err
}

func (r *unitRepository) Create(ctx context.Context, unit *models.PropertyUnit) error {
	return r.db.WithContext(ctx).Create(unit).Error
}

func (r *unitRepository) Update(ctx context.Context, unit *models.PropertyUnit) error {
	return r.db.WithContext(ctx).Save(unit).Error
}

func (r *unitRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.PropertyUnit{}, id).Error
}

// ChangeStatus persists a unit status change and appends to the unit's
// history log in one transaction. The history is append-only.
func (r *unitRepository) ChangeStatus(ctx context.Context, unit *models.PropertyUnit, status string, at time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PropertyUnit{}).
			Where("id = ?", unit.ID).
			Update("status", status).Error; err != nil {
			return err
		}

		entry := models.UnitStatusHistory{
			PropertyUnitID: unit.ID,
			Status:         status,
			DateStart:      at,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		unit.Status = status
		unit.StatusHistory = append(unit.StatusHistory, entry)
		return nil
	})
}
