package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/rentfolio/rentfolio-api/internal/models"
)

// PropertyFSM wraps a property with its acquisition pipeline state machine
type PropertyFSM struct {
	property *models.Property
	fsm      *fsm.FSM
}

// NewPropertyFSM creates a new property state machine
func NewPropertyFSM(property *models.Property) *PropertyFSM {
	pfsm := &PropertyFSM{
		property: property,
	}

	pfsm.fsm = fsm.NewFSM(
		property.Status,
		fsm.Events{
			// opportunity → soft offer
			{Name: "make_soft_offer", Src: []string{models.PropertyStatusOpportunity}, Dst: models.PropertyStatusSoftOffer},

			// soft offer → hard offer
			{Name: "make_hard_offer", Src: []string{models.PropertyStatusSoftOffer}, Dst: models.PropertyStatusHardOffer},

			// soft/hard offer → opportunity (deal fell through)
			{Name: "withdraw", Src: []string{models.PropertyStatusSoftOffer, models.PropertyStatusHardOffer}, Dst: models.PropertyStatusOpportunity},

			// hard offer → rehab (closed)
			{Name: "start_rehab", Src: []string{models.PropertyStatusHardOffer}, Dst: models.PropertyStatusRehab},

			// rehab → rented
			{Name: "rent_out", Src: []string{models.PropertyStatusRehab}, Dst: models.PropertyStatusRented},

			// rehab/rented → sold
			{Name: "sell", Src: []string{models.PropertyStatusRehab, models.PropertyStatusRented}, Dst: models.PropertyStatusSold},
		},
		fsm.Callbacks{},
	)

	return pfsm
}

// Transition fires the named pipeline event
func (p *PropertyFSM) Transition(ctx context.Context, event string) error {
	if !p.fsm.Can(event) {
		return fmt.Errorf("property cannot %s in current state: %s", event, p.property.Status)
	}

	if err := p.fsm.Event(ctx, event); err != nil {
		return fmt.Errorf("failed to transition property: %w", err)
	}

	p.property.Status = p.fsm.Current()
	return nil
}

// Current returns the current state
func (p *PropertyFSM) Current() string {
	return p.fsm.Current()
}

// Can checks if a transition is possible
func (p *PropertyFSM) Can(event string) bool {
	return p.fsm.Can(event)
}

// AvailableTransitions lists the events valid from the current state
func (p *PropertyFSM) AvailableTransitions() []string {
	return p.fsm.AvailableTransitions()
}
