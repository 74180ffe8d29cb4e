package order

import (
	"fmt"
	"testing"
	"time"

	"localbite-be/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// orderIn builds an order whose decisions are consistent with status.
func orderIn(status Status) Order {
	cook, foodie := DecisionPending, DecisionPending
	switch status {
	case StatusCookConfirmed:
		cook = DecisionConfirmed
	case StatusFoodieConfirmed:
		foodie = DecisionConfirmed
	case StatusConfirmed, StatusCompleted:
		cook, foodie = DecisionConfirmed, DecisionConfirmed
	case StatusCookCancelled:
		cook = DecisionCancelled
	case StatusFoodieCancelled:
		foodie = DecisionCancelled
	}
	return Order{
		Status:         status,
		CookDecision:   Decision{State: cook},
		FoodieDecision: Decision{State: foodie},
	}
}

var (
	cookConfirm    = Move{By: PartyCook, Action: ActionConfirm}
	foodieConfirm  = Move{By: PartyFoodie, Action: ActionConfirm}
	cookCancel     = Move{By: PartyCook, Action: ActionCancel}
	foodieCancel   = Move{By: PartyFoodie, Action: ActionCancel}
	cookComplete   = Move{By: PartyCook, Action: ActionComplete}
	foodieComplete = Move{By: PartyFoodie, Action: ActionComplete}
	systemExpire   = Move{By: PartySystem, Action: ActionExpire}
	systemConfirm  = Move{By: PartySystem, Action: ActionConfirm}
	cookExpire     = Move{By: PartyCook, Action: ActionExpire}
	systemComplete = Move{By: PartySystem, Action: ActionComplete}
)

var allMoves = []Move{
	cookConfirm, foodieConfirm, cookCancel, foodieCancel,
	cookComplete, foodieComplete, systemExpire,
	systemConfirm, cookExpire, systemComplete,
}

// legalEdges is the complete transition graph. Anything absent must fail.
var legalEdges = map[Status]map[Move]Status{
	StatusRequested: {
		cookConfirm:   StatusCookConfirmed,
		foodieConfirm: StatusFoodieConfirmed,
		cookCancel:    StatusCookCancelled,
		foodieCancel:  StatusFoodieCancelled,
		systemExpire:  StatusExpired,
	},
	StatusCookConfirmed: {
		foodieConfirm: StatusConfirmed,
		cookCancel:    StatusCookCancelled,
		foodieCancel:  StatusFoodieCancelled,
		systemExpire:  StatusExpired,
	},
	StatusFoodieConfirmed: {
		cookConfirm:  StatusConfirmed,
		cookCancel:   StatusCookCancelled,
		foodieCancel: StatusFoodieCancelled,
		systemExpire: StatusExpired,
	},
	StatusConfirmed: {
		cookCancel:     StatusCookCancelled,
		foodieCancel:   StatusFoodieCancelled,
		cookComplete:   StatusCompleted,
		foodieComplete: StatusCompleted,
	},
}

func TestApply_TransitionGraph(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	for _, from := range AllStatuses {
		for _, m := range allMoves {
			name := fmt.Sprintf("%s/%s-%s", from, m.By, m.Action)
			t.Run(name, func(t *testing.T) {
				o := orderIn(from)
				next, err := Apply(o, m, now)

				want, legal := legalEdges[from][m]
				if !legal {
					require.Error(t, err)
					assert.True(t, apperror.Is(err, apperror.KindInvalidState), err)
					assert.Equal(t, o, next, "rejected move must not change the order")
					return
				}

				require.NoError(t, err)
				assert.Equal(t, want, next.Status)
				assert.Equal(t, from, o.Status, "input order must not be modified")
			})
		}
	}
}

func TestApply_TerminalStatesAbsorb(t *testing.T) {
	for _, s := range AllStatuses {
		if !s.Terminal() {
			continue
		}
		for _, m := range allMoves {
			_, err := Apply(orderIn(s), m, time.Now())
			assert.Error(t, err, "%s must reject %s-%s", s, m.By, m.Action)
		}
	}
}

func TestApply_StatusIsJoinOfDecisions(t *testing.T) {
	now := time.Now()
	for from, edges := range legalEdges {
		for m := range edges {
			next, err := Apply(orderIn(from), m, now)
			require.NoError(t, err)
			if m.Action == ActionConfirm || m.Action == ActionCancel {
				assert.Equal(t, JoinStatus(next.CookDecision.State, next.FoodieDecision.State), next.Status)
			}
		}
	}
}

func TestApply_Timestamps(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Cook then foodie confirm", func(t *testing.T) {
		o, err := Apply(orderIn(StatusRequested), cookConfirm, now)
		require.NoError(t, err)
		assert.Equal(t, StatusCookConfirmed, o.Status)
		assert.Equal(t, DecisionConfirmed, o.CookDecision.State)
		assert.Equal(t, now, *o.CookDecision.DecidedAt)
		assert.Nil(t, o.ConfirmedAt)

		later := now.Add(time.Minute)
		o, err = Apply(o, foodieConfirm, later)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, o.Status)
		require.NotNil(t, o.ConfirmedAt)
		assert.Equal(t, later, *o.ConfirmedAt)
	})

	t.Run("Foodie then cook confirm", func(t *testing.T) {
		o, err := Apply(orderIn(StatusRequested), foodieConfirm, now)
		require.NoError(t, err)
		assert.Equal(t, StatusFoodieConfirmed, o.Status)

		o, err = Apply(o, cookConfirm, now)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, o.Status)
		assert.NotNil(t, o.ConfirmedAt)
	})

	t.Run("Cancel records who and why", func(t *testing.T) {
		o, err := Apply(orderIn(StatusConfirmed), Move{By: PartyFoodie, Action: ActionCancel, Note: "plans changed"}, now)
		require.NoError(t, err)
		assert.Equal(t, StatusFoodieCancelled, o.Status)
		assert.Equal(t, DecisionCancelled, o.FoodieDecision.State)
		assert.Equal(t, "", o.FoodieDecision.Note)
		require.NotNil(t, o.CancelledAt)
		assert.Equal(t, &CancelInfo{CancelledBy: PartyFoodie, Reason: "plans changed"}, o.CancelInfo)
	})

	t.Run("Confirm keeps note", func(t *testing.T) {
		o, err := Apply(orderIn(StatusRequested), Move{By: PartyCook, Action: ActionConfirm, Note: "ready at 7"}, now)
		require.NoError(t, err)
		assert.Equal(t, "ready at 7", o.CookDecision.Note)
	})

	t.Run("Complete", func(t *testing.T) {
		o, err := Apply(orderIn(StatusConfirmed), cookComplete, now)
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, o.Status)
		assert.Equal(t, now, *o.CompletedAt)
	})

	t.Run("Expire", func(t *testing.T) {
		o, err := Apply(orderIn(StatusCookConfirmed), systemExpire, now)
		require.NoError(t, err)
		assert.Equal(t, StatusExpired, o.Status)
		assert.Equal(t, &CancelInfo{CancelledBy: PartySystem, Reason: "Order expired"}, o.CancelInfo)
		assert.Equal(t, now, *o.CancelledAt)
	})
}

func TestApply_RejectionMessages(t *testing.T) {
	_, err := Apply(orderIn(StatusCompleted), foodieCancel, time.Now())
	assert.ErrorIs(t, err, ErrNotCancellable)

	_, err = Apply(orderIn(StatusConfirmed), foodieConfirm, time.Now())
	assert.ErrorIs(t, err, ErrNotConfirmable)

	_, err = Apply(orderIn(StatusRequested), cookComplete, time.Now())
	assert.ErrorIs(t, err, ErrNotCompletable)

	_, err = Apply(orderIn(StatusConfirmed), systemExpire, time.Now())
	assert.ErrorIs(t, err, ErrNotExpirable)
}

func TestJoinStatus(t *testing.T) {
	tests := []struct {
		cook, foodie DecisionState
		want         Status
	}{
		{DecisionPending, DecisionPending, StatusRequested},
		{DecisionConfirmed, DecisionPending, StatusCookConfirmed},
		{DecisionPending, DecisionConfirmed, StatusFoodieConfirmed},
		{DecisionConfirmed, DecisionConfirmed, StatusConfirmed},
		{DecisionCancelled, DecisionPending, StatusCookCancelled},
		{DecisionCancelled, DecisionConfirmed, StatusCookCancelled},
		{DecisionPending, DecisionCancelled, StatusFoodieCancelled},
		{DecisionConfirmed, DecisionCancelled, StatusFoodieCancelled},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, JoinStatus(tt.cook, tt.foodie), "%s/%s", tt.cook, tt.foodie)
	}
}

func TestStatusPredicates(t *testing.T) {
	terminal := map[Status]bool{
		StatusCompleted: true, StatusCookCancelled: true,
		StatusFoodieCancelled: true, StatusExpired: true,
	}
	for _, s := range AllStatuses {
		assert.Equal(t, terminal[s], s.Terminal(), s)
	}

	assert.True(t, StatusFoodieConfirmed.AwaitingConfirmation())
	assert.False(t, StatusConfirmed.AwaitingConfirmation())
}
