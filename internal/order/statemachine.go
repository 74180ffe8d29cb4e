package order

import "time"

type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
	ActionExpire   Action = "expire"
)

// Move is one request to advance an order. Note is the confirmation note
// for ActionConfirm and the cancel reason for ActionCancel.
type Move struct {
	By     Party
	Action Action
	Note   string
}

// decisionMoves lists the legal per-party decision changes.
var decisionMoves = map[Action]map[DecisionState]DecisionState{
	ActionConfirm: {
		DecisionPending: DecisionConfirmed,
	},
	ActionCancel: {
		DecisionPending:   DecisionCancelled,
		DecisionConfirmed: DecisionCancelled,
	},
}

// JoinStatus derives the order status from the two party decisions.
// Cancellation wins; a cancelled pair cannot occur since cancelled orders
// are terminal.
func JoinStatus(cook, foodie DecisionState) Status {
	switch {
	case cook == DecisionCancelled:
		return StatusCookCancelled
	case foodie == DecisionCancelled:
		return StatusFoodieCancelled
	case cook == DecisionConfirmed && foodie == DecisionConfirmed:
		return StatusConfirmed
	case cook == DecisionConfirmed:
		return StatusCookConfirmed
	case foodie == DecisionConfirmed:
		return StatusFoodieConfirmed
	}
	return StatusRequested
}

func rejection(a Action) error {
	switch a {
	case ActionConfirm:
		return ErrNotConfirmable
	case ActionCancel:
		return ErrNotCancellable
	case ActionComplete:
		return ErrNotCompletable
	case ActionExpire:
		return ErrNotExpirable
	}
	return ErrInvalidTransition
}

// Apply returns o advanced by m at time now, or an InvalidState error when
// the move is illegal from o's status. o itself is never modified.
func Apply(o Order, m Move, now time.Time) (Order, error) {
	if o.Status.Terminal() {
		return o, rejection(m.Action)
	}

	next := o
	switch m.Action {
	case ActionComplete:
		if o.Status != StatusConfirmed || m.By == PartySystem {
			return o, ErrNotCompletable
		}
		next.Status = StatusCompleted
		next.CompletedAt = &now

	case ActionExpire:
		if m.By != PartySystem || !o.Status.AwaitingConfirmation() {
			return o, ErrNotExpirable
		}
		next.Status = StatusExpired
		next.CancelledAt = &now
		next.CancelInfo = &CancelInfo{CancelledBy: PartySystem, Reason: expiredReason}

	case ActionConfirm, ActionCancel:
		var d *Decision
		switch m.By {
		case PartyCook:
			d = &next.CookDecision
		case PartyFoodie:
			d = &next.FoodieDecision
		default:
			return o, rejection(m.Action)
		}

		target, ok := decisionMoves[m.Action][d.State]
		if !ok {
			return o, rejection(m.Action)
		}

		*d = Decision{State: target, DecidedAt: &now}
		if m.Action == ActionConfirm {
			d.Note = m.Note
		}

		next.Status = JoinStatus(next.CookDecision.State, next.FoodieDecision.State)
		switch next.Status {
		case StatusConfirmed:
			next.ConfirmedAt = &now
		case StatusCookCancelled, StatusFoodieCancelled:
			next.CancelledAt = &now
			next.CancelInfo = &CancelInfo{CancelledBy: m.By, Reason: m.Note}
		}

	default:
		return o, ErrInvalidTransition
	}

	return next, nil
}
