package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rentfolio/rentfolio-api/internal/models"
	"github.com/rentfolio/rentfolio-api/internal/repository"
	"github.com/rentfolio/rentfolio-api/internal/statemachine"
	"github.com/rentfolio/rentfolio-api/pkg/logger"
)

type PropertyService struct {
	repo            repository.PropertyRepository
	unitRepo        repository.UnitRepository
	notificationSvc *NotificationService
	auditSvc        *AuditService
}

func NewPropertyService(
	repo repository.PropertyRepository,
	unitRepo repository.UnitRepository,
	notificationSvc *NotificationService,
	auditSvc *AuditService,
) *PropertyService {
	return &PropertyService{
		repo:            repo,
		unitRepo:        unitRepo,
		notificationSvc: notificationSvc,
		auditSvc:        auditSvc,
	}
}

func (s *PropertyService) FindByID(ctx context.Context, id uint) (*models.Property, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PropertyService) List(ctx context.Context, query *repository.ListQuery) ([]models.Property, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *PropertyService) Create(ctx context.Context, property *models.Property) error {
	if property.Status == "" {
		property.Status = models.PropertyStatusOpportunity
	}

	if err := s.repo.Create(ctx, property); err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}

	// Seed one vacant unit per declared unit so occupancy tracking works
	// from day one
	for i := 0; i < property.UnitCount(); i++ {
		unit := models.PropertyUnit{
			PropertyID: property.ID,
			Status:     models.UnitStatusVacant,
		}
		if err := s.unitRepo.Create(ctx, &unit); err != nil {
			return fmt.Errorf("failed to create unit: %w", err)
		}
		property.PropertyUnits = append(property.PropertyUnits, unit)
	}

	logger.Info(fmt.Sprintf("[PropertyService] Created property %d (%s)", property.ID, property.Address))
	return nil
}

func (s *PropertyService) Update(ctx context.Context, property *models.Property) error {
	existing, err := s.repo.FindByID(ctx, property.ID)
	if err != nil {
		return err
	}

	// Status moves through Transition, not Update
	property.Status = existing.Status
	property.Archived = existing.Archived

	if property.Note == nil {
		property.Note = existing.Note
	}
	if property.Units == nil {
		property.Units = existing.Units
	}

	return s.repo.Update(ctx, property)
}

func (s *PropertyService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// Transition moves a property through the acquisition pipeline
func (s *PropertyService) Transition(ctx context.Context, id uint, event string, userID uint) (*models.Property, error) {
	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pfsm := statemachine.NewPropertyFSM(property)
	if err := pfsm.Transition(ctx, event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	if err := s.repo.Update(ctx, property); err != nil {
		return nil, fmt.Errorf("failed to update property status: %w", err)
	}

	s.auditSvc.Log(ctx, userID, "TRANSITION", "Property", property.ID,
		fmt.Sprintf("event=%s status=%s", event, property.Status), "", "")

	title := fmt.Sprintf("Property status changed: %s", property.Address)
	message := fmt.Sprintf("%s is now %s", property.Address, property.Status)
	if err := s.notificationSvc.NotifyAdmins(ctx, title, message, models.NotificationTypeStatusChanged); err != nil {
		logger.Error(fmt.Sprintf("[PropertyService] Error notifying status change for property %d: %v", property.ID, err))
	}

	return property, nil
}

// Archive hides a property from portfolio reporting without deleting its
// history
func (s *PropertyService) Archive(ctx context.Context, id uint, userID uint) error {
	if err := s.repo.Archive(ctx, id); err != nil {
		return fmt.Errorf("failed to archive property: %w", err)
	}
	s.auditSvc.Log(ctx, userID, "ARCHIVE", "Property", id, "", "", "")
	return nil
}

func (s *PropertyService) Unarchive(ctx context.Context, id uint, userID uint) error {
	if err := s.repo.Unarchive(ctx, id); err != nil {
		return fmt.Errorf("failed to unarchive property: %w", err)
	}
	s.auditSvc.Log(ctx, userID, "UNARCHIVE", "Property", id, "", "", "")
	return nil
}

// ChangeUnitStatus moves a unit through its occupancy machine and appends
// to the unit's status history
func (s *PropertyService) ChangeUnitStatus(ctx context.Context, unitID uint, event string, at time.Time, userID uint) (*models.PropertyUnit, error) {
	unit, err := s.unitRepo.FindByID(ctx, unitID)
	if err != nil {
		return nil, err
	}

	ufsm := statemachine.NewUnitFSM(unit)

	var transitionErr error
	switch event {
	case "occupy":
		transitionErr = ufsm.Occupy(ctx)
	case "vacate":
		transitionErr = ufsm.Vacate(ctx)
	case "fall_behind":
		transitionErr = ufsm.FallBehind(ctx)
	case "catch_up":
		transitionErr = ufsm.CatchUp(ctx)
	default:
		return nil, fmt.Errorf("%w: unknown event %q", ErrInvalidState, event)
	}
	if transitionErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, transitionErr)
	}

	if at.IsZero() {
		at = time.Now().UTC()
	}
	if err := s.unitRepo.ChangeStatus(ctx, unit, unit.Status, at); err != nil {
		return nil, fmt.Errorf("failed to persist unit status: %w", err)
	}

	s.auditSvc.Log(ctx, userID, "UNIT_STATUS", "PropertyUnit", unit.ID,
		fmt.Sprintf("event=%s status=%s", event, unit.Status), "", "")

	return unit, nil
}

// UpdateUnit changes a unit's rent or tenant without touching its status
func (s *PropertyService) UpdateUnit(ctx context.Context, unit *models.PropertyUnit) error {
	existing, err := s.unitRepo.FindByID(ctx, unit.ID)
	if err != nil {
		return err
	}

	existing.Rent = unit.Rent
	if unit.TenantName != nil {
		existing.TenantName = unit.TenantName
	}

	if err := s.unitRepo.Update(ctx, existing); err != nil {
		return err
	}
	*unit = *existing
	return nil
}
