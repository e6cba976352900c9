package purchase

import (
	"time"

	"autocredit-backend/pkg/money"
)

// Trigger names an action that may move a purchase between states.
type Trigger string

const (
	TriggerStart           Trigger = "start"
	TriggerApproveFinance  Trigger = "approve_financing"
	TriggerDeclineFinance  Trigger = "decline_financing"
	TriggerFinalizeApprove Trigger = "finalize_approve"
	TriggerFinalizeReject  Trigger = "finalize_reject"
	TriggerFinalizePending Trigger = "finalize_pending"
	TriggerFinalizeDeliver Trigger = "finalize_deliver"
	TriggerBalanceSettled  Trigger = "balance_settled"
)

// transitions is the closed state × trigger table. Combinations absent here
// are rejected with ErrInvalidState; tests cover every status exhaustively.
var transitions = map[Status]map[Trigger]Status{
	StatusPending: {
		TriggerStart: StatusUnderReview,
	},
	StatusUnderReview: {
		TriggerApproveFinance: StatusApproved,
		TriggerDeclineFinance: StatusRejected,
		TriggerBalanceSettled: StatusCompleted,
	},
	StatusApproved: {
		// administrative overrides allowed at the seller's final decision
		TriggerFinalizeApprove: StatusApproved,
		TriggerFinalizeReject:  StatusRejected,
		TriggerFinalizePending: StatusPending,
		TriggerFinalizeDeliver: StatusCompleted,
		TriggerBalanceSettled:  StatusCompleted,
	},
	StatusRejected:  {},
	StatusCompleted: {},
	StatusCancelled: {},
}

// Next resolves the transition table. The bool is false when the current
// status does not admit the trigger.
func Next(current Status, trigger Trigger) (Status, bool) {
	next, ok := transitions[current][trigger]
	return next, ok
}

// Statuses lists every status the table knows, for exhaustive checks.
func Statuses() []Status {
	return []Status{StatusPending, StatusUnderReview, StatusApproved, StatusRejected, StatusCompleted, StatusCancelled}
}

// FinalizeTrigger maps a seller's finalize decision onto the table.
func FinalizeTrigger(decision Status) (Trigger, bool) {
	switch decision {
	case StatusApproved:
		return TriggerFinalizeApprove, true
	case StatusRejected:
		return TriggerFinalizeReject, true
	case StatusPending:
		return TriggerFinalizePending, true
	case StatusCompleted:
		return TriggerFinalizeDeliver, true
	}
	return "", false
}

// ApplyPayment returns a new purchase snapshot with the payment applied,
// leaving the receiver's source untouched. The caller decides the atomic
// write mechanism. The bool reports whether this payment settled the
// balance; a settled snapshot is already Completed with the delivery stamp.
func ApplyPayment(p Purchase, amount float64, now time.Time) (Purchase, bool, error) {
	if p.Status == StatusCompleted {
		return p, false, ErrInvalidState
	}
	if !p.Financed() || p.OutstandingBalance <= 0 {
		return p, false, ErrInvalidState
	}
	amt := money.Round2(amount)
	if amt <= 0 || money.Cents(amt) > money.Cents(p.OutstandingBalance) {
		return p, false, ErrInvalidAmount
	}

	next := p
	next.TotalPaid = money.Round2(p.TotalPaid + amt)
	next.OutstandingBalance = money.Round2(p.OutstandingBalance - amt)
	if next.OutstandingBalance < 0 { // floor rounding drift
		next.OutstandingBalance = 0
	}

	settled := money.Cents(next.OutstandingBalance) == 0
	if settled {
		next.OutstandingBalance = 0
		if s, ok := Next(next.Status, TriggerBalanceSettled); ok {
			next.Status = s
		} else {
			next.Status = StatusCompleted
		}
		t := now.UTC()
		next.DeliveredAt = &t
	}
	return next, settled, nil
}
