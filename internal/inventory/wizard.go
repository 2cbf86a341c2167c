package inventory

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/landahan-pos/console/internal/catalog"
	"github.com/shopspring/decimal"
)

// Stage is the delivery wizard's position. The wizard is a strict linear
// machine: every terminal transition returns to StageIdle so the user can
// always restart from scratch.
type Stage int

const (
	StageIdle Stage = iota
	StageConfirming
	StageEnteringProfit
	StageEnteringRejects
	StageSubmitting
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageConfirming:
		return "confirming"
	case StageEnteringProfit:
		return "entering_profit"
	case StageEnteringRejects:
		return "entering_rejects"
	case StageSubmitting:
		return "submitting"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

var (
	// ErrWizardBusy means a delivery draft is already in flight.
	ErrWizardBusy = errors.New("a delivery is already in progress")

	// ErrBadTransition means the event is not legal in the current stage.
	ErrBadTransition = errors.New("action not allowed at this step")

	// ErrNotDeliverable means the product cannot be delivered.
	ErrNotDeliverable = errors.New("product cannot be delivered")

	// ErrNotHuskable means the product has no unhusked stock to convert.
	ErrNotHuskable = errors.New("product cannot be husked")

	// ErrUnknownProduct means the ID is not in the loaded product list.
	ErrUnknownProduct = errors.New("product not found")

	// ErrNoStock means there is nothing to deliver.
	ErrNoStock = errors.New("no stock to deliver")

	// ErrNegativeAmount rejects negative money or quantity input.
	ErrNegativeAmount = errors.New("amount must be zero or greater")
)

// Draft accumulates the wizard's fields between stages. It lives only in
// memory; the backend becomes the source of truth once submitted.
type Draft struct {
	ID              uuid.UUID
	ProductID       int64
	ProductName     string
	Quantity        int64
	CostOfGoodsSold decimal.Decimal
	TotalEarned     decimal.Decimal
	RejectQuantity  int64
}

// Profit is what the delivery earned over its cost basis.
func (d Draft) Profit() decimal.Decimal {
	return d.TotalEarned.Sub(d.CostOfGoodsSold)
}

// EventKind enumerates wizard events.
type EventKind int

const (
	EventStart EventKind = iota
	EventConfirm
	EventEnterProfit
	EventEnterRejects
	EventCancel
	EventResolve
)

// Event is the wizard's single input type.
type Event struct {
	Kind EventKind

	// EventStart
	Product catalog.Product

	// EventEnterProfit
	TotalEarned decimal.Decimal

	// EventEnterRejects
	RejectQuantity int64
}

// Wizard drives the three-stage delivery flow. Not safe for concurrent use;
// the owning Controller serializes access.
type Wizard struct {
	stage Stage
	draft *Draft
}

func (w *Wizard) Stage() Stage { return w.stage }

// Draft returns a copy of the current draft, if any.
func (w *Wizard) Draft() (Draft, bool) {
	if w.draft == nil {
		return Draft{}, false
	}
	return *w.draft, true
}

// Dispatch applies one event. On any error the wizard state is unchanged,
// except EventCancel and EventResolve which always land on StageIdle.
func (w *Wizard) Dispatch(ev Event) error {
	switch ev.Kind {
	case EventStart:
		if w.stage != StageIdle {
			return ErrWizardBusy
		}
		p := ev.Product
		if !p.Deliverable() {
			return ErrNotDeliverable
		}
		if p.CurrentStock <= 0 {
			return ErrNoStock
		}
		// The whole stock goes out in one delivery; the cost basis is
		// locked in here so later stock reloads cannot skew the draft.
		w.draft = &Draft{
			ID:              uuid.New(),
			ProductID:       p.ID,
			ProductName:     p.Name,
			Quantity:        p.CurrentStock,
			CostOfGoodsSold: p.StockValue(),
		}
		w.stage = StageConfirming
		return nil

	case EventConfirm:
		if w.stage != StageConfirming {
			return ErrBadTransition
		}
		w.stage = StageEnteringProfit
		return nil

	case EventEnterProfit:
		if w.stage != StageEnteringProfit {
			return ErrBadTransition
		}
		if ev.TotalEarned.IsNegative() {
			return ErrNegativeAmount
		}
		w.draft.TotalEarned = ev.TotalEarned
		w.stage = StageEnteringRejects
		return nil

	case EventEnterRejects:
		if w.stage != StageEnteringRejects {
			return ErrBadTransition
		}
		if ev.RejectQuantity < 0 {
			return ErrNegativeAmount
		}
		w.draft.RejectQuantity = ev.RejectQuantity
		w.stage = StageSubmitting
		return nil

	case EventCancel:
		if w.stage == StageSubmitting {
			// The request is already on the wire; let it resolve.
			return ErrBadTransition
		}
		w.draft = nil
		w.stage = StageIdle
		return nil

	case EventResolve:
		if w.stage != StageSubmitting {
			return ErrBadTransition
		}
		// Success or failure, the draft is discarded. A failed delivery
		// is restarted from scratch, never retried.
		w.draft = nil
		w.stage = StageIdle
		return nil
	}
	return ErrBadTransition
}
