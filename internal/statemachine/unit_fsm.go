package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/rentfolio/rentfolio-api/internal/models"
)

// UnitFSM wraps a property unit with its occupancy state machine
type UnitFSM struct {
	unit *models.PropertyUnit
	fsm  *fsm.FSM
}

// NewUnitFSM creates a new unit state machine
func NewUnitFSM(unit *models.PropertyUnit) *UnitFSM {
	ufsm := &UnitFSM{
		unit: unit,
	}

	ufsm.fsm = fsm.NewFSM(
		unit.Status,
		fsm.Events{
			// vacant → occupied
			{Name: "occupy", Src: []string{models.UnitStatusVacant}, Dst: models.UnitStatusOccupied},

			// occupied/behind → vacant
			{Name: "vacate", Src: []string{models.UnitStatusOccupied, models.UnitStatusBehindRent}, Dst: models.UnitStatusVacant},

			// occupied → behind on rent
			{Name: "fall_behind", Src: []string{models.UnitStatusOccupied}, Dst: models.UnitStatusBehindRent},

			// behind on rent → occupied
			{Name: "catch_up", Src: []string{models.UnitStatusBehindRent}, Dst: models.UnitStatusOccupied},
		},
		fsm.Callbacks{},
	)

	return ufsm
}

// Occupy transitions the unit to occupied
func (u *UnitFSM) Occupy(ctx context.Context) error {
	if !u.unit.MayOccupy() {
		return fmt.Errorf("unit cannot be occupied in current state: %s", u.unit.Status)
	}

	if err := u.fsm.Event(ctx, "occupy"); err != nil {
		return fmt.Errorf("failed to occupy unit: %w", err)
	}

	u.unit.Status = u.fsm.Current()
	return nil
}

// Vacate transitions the unit to vacant
func (u *UnitFSM) Vacate(ctx context.Context) error {
	if !u.unit.MayVacate() {
		return fmt.Errorf("unit cannot be vacated in current state: %s", u.unit.Status)
	}

	if err := u.fsm.Event(ctx, "vacate"); err != nil {
		return fmt.Errorf("failed to vacate unit: %w", err)
	}

	u.unit.Status = u.fsm.Current()
	return nil
}

// FallBehind transitions the unit to behind on rent
func (u *UnitFSM) FallBehind(ctx context.Context) error {
	if err := u.fsm.Event(ctx, "fall_behind"); err != nil {
		return fmt.Errorf("failed to mark unit behind on rent: %w", err)
	}

	u.unit.Status = u.fsm.Current()
	return nil
}

// CatchUp transitions a behind-on-rent unit back to occupied
func (u *UnitFSM) CatchUp(ctx context.Context) error {
	if err := u.fsm.Event(ctx, "catch_up"); err != nil {
		return fmt.Errorf("failed to catch up unit: %w", err)
	}

	u.unit.Status = u.fsm.Current()
	return nil
}

// Current returns the current state
func (u *UnitFSM) Current() string {
	return u.fsm.Current()
}

// Can checks if a transition is possible
func (u *UnitFSM) Can(event string) bool {
	return u.fsm.Can(event)
}
