package order

import (
	"context"
	"errors"
	"time"

	"localbite-be/internal/auth"
	"localbite-be/internal/events"
	"localbite-be/internal/logger"
	"localbite-be/internal/meal"
	"localbite-be/internal/metrics"
	"localbite-be/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const maxCodeAttempts = 5

// MealReader is the slice of the meal catalogue an order needs.
type MealReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*meal.Meal, error)
}

type Service interface {
	Create(ctx context.Context, p auth.Principal, in CreateInput) (*Order, error)
	CookConfirm(ctx context.Context, p auth.Principal, id uuid.UUID, note string) (*Order, error)
	FoodieConfirm(ctx context.Context, p auth.Principal, id uuid.UUID, note string) (*Order, error)
	CookCancel(ctx context.Context, p auth.Principal, id uuid.UUID, reason string) (*Order, error)
	FoodieCancel(ctx context.Context, p auth.Principal, id uuid.UUID, reason string) (*Order, error)
	Complete(ctx context.Context, p auth.Principal, id uuid.UUID) (*Order, error)
	Get(ctx context.Context, p auth.Principal, id uuid.UUID) (*Order, error)
	ListForFoodie(ctx context.Context, p auth.Principal, foodieID uuid.UUID) ([]*Order, error)
	ListForCook(ctx context.Context, p auth.Principal, cookID uuid.UUID) ([]*Order, error)
	ListAll(ctx context.Context, p auth.Principal) ([]*Order, error)
	// ExpireStale moves every order still awaiting confirmation and
	// requested before the cutoff to expired.
	ExpireStale(ctx context.Context, before time.Time) (int, error)
}

type service struct {
	repo      Repository
	meals     MealReader
	publisher events.Publisher
	metrics   *metrics.Registry
	now       func() time.Time
	newCode   func() (string, error)
}

func NewService(repo Repository, meals MealReader, publisher events.Publisher, m *metrics.Registry) Service {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if m == nil {
		m = metrics.NewRegistry()
	}
	return &service{
		repo:      repo,
		meals:     meals,
		publisher: publisher,
		metrics:   m,
		now:       func() time.Time { return time.Now().UTC() },
		newCode:   NewCode,
	}
}

func validateCreate(in *CreateInput) error {
	if in.MealID == uuid.Nil {
		return ErrMissingMeal
	}
	if !in.FulfillmentType.Valid() {
		return ErrInvalidFulfillment
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.Quantity < 1 {
		return ErrInvalidQuantity
	}

	switch in.FulfillmentType {
	case FulfillmentPickup:
		in.Delivery = nil
		if in.Pickup == nil {
			in.Pickup = &PickupDetails{}
		}
		return utils.MaxLen("pickupNote", in.Pickup.PickupNote, maxNoteLength)
	default:
		in.Pickup = nil
		if in.Delivery == nil {
			in.Delivery = &DeliveryDetails{}
		}
		return utils.FirstErr(
			utils.MaxLen("addressLabel", in.Delivery.AddressLabel, maxAddressLabelLength),
			utils.MaxLen("addressText", in.Delivery.AddressText, maxAddressTextLength),
			utils.MaxLen("deliveryNote", in.Delivery.DeliveryNote, maxNoteLength),
		)
	}
}

func (s *service) Create(ctx context.Context, p auth.Principal, in CreateInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("meal_id", in.MealID.String()),
	)

	if !p.Authenticated() {
		return nil, ErrUnauthorized
	}
	if err := validateCreate(&in); err != nil {
		log.Warn("invalid order request", zap.Error(err))
		return nil, err
	}

	m, err := s.meals.FindByID(ctx, in.MealID)
	if err != nil {
		log.Warn("meal lookup failed", zap.Error(err))
		return nil, err
	}

	switch {
	case p.Is(m.CookID):
		err = ErrOwnMeal
	case m.Availability != meal.Available:
		err = ErrMealUnavailable
	case m.AvailablePortions != nil && *m.AvailablePortions < in.Quantity:
		err = ErrNotEnoughPortions
	case !m.Offers(string(in.FulfillmentType)):
		err = ErrFulfillmentUnsupported
	}
	if err != nil {
		log.Warn("order rejected", zap.Error(err))
		return nil, err
	}

	price := m.Price
	if m.IsFree {
		price = decimal.Zero
	}

	o := &Order{
		ID:       uuid.New(),
		MealID:   m.ID,
		CookID:   m.CookID,
		FoodieID: p.UserID,
		MealSnapshot: MealSnapshot{
			Name:          m.Name,
			UnitLabel:     m.UnitLabel,
			Price:         price,
			Currency:      m.Currency,
			CoverPhotoURL: m.CoverPhotoURL,
		},
		Quantity:        in.Quantity,
		FulfillmentType: in.FulfillmentType,
		Pickup:          in.Pickup,
		Delivery:        in.Delivery,
		Status:          StatusRequested,
		CookDecision:    Decision{State: DecisionPending},
		FoodieDecision:  Decision{State: DecisionPending},
		RequestedAt:     s.now(),
	}

	for attempt := 1; ; attempt++ {
		if o.Code, err = s.newCode(); err != nil {
			return nil, err
		}
		err = s.repo.Create(ctx, o)
		if !errors.Is(err, ErrCodeTaken) || attempt == maxCodeAttempts {
			break
		}
	}
	if err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	// re-read to pick up the meal, cook and foodie summaries
	if stored, err := s.repo.GetByID(ctx, o.ID); err == nil {
		o = stored
	} else {
		log.Warn("failed to reload created order", zap.Error(err))
		o.Meal = &MealRef{ID: m.ID, Name: m.Name, CoverPhotoURL: m.CoverPhotoURL}
	}

	s.metrics.Inc("orders_created")
	s.publish(ctx, events.EventOrderRequested, "", o, PartyFoodie)

	log.Info("order created", zap.String("order_id", o.ID.String()), zap.String("order_code", o.Code))
	return o, nil
}

func (s *service) CookConfirm(ctx context.Context, p auth.Principal, id uuid.UUID, note string) (*Order, error) {
	return s.transition(ctx, "CookConfirm", p, id, Move{By: PartyCook, Action: ActionConfirm, Note: note})
}

func (s *service) FoodieConfirm(ctx context.Context, p auth.Principal, id uuid.UUID, note string) (*Order, error) {
	return s.transition(ctx, "FoodieConfirm", p, id, Move{By: PartyFoodie, Action: ActionConfirm, Note: note})
}

func (s *service) CookCancel(ctx context.Context, p auth.Principal, id uuid.UUID, reason string) (*Order, error) {
	return s.transition(ctx, "CookCancel", p, id, Move{By: PartyCook, Action: ActionCancel, Note: reason})
}

func (s *service) FoodieCancel(ctx context.Context, p auth.Principal, id uuid.UUID, reason string) (*Order, error) {
	return s.transition(ctx, "FoodieCancel", p, id, Move{By: PartyFoodie, Action: ActionCancel, Note: reason})
}

// Complete may be called by either party once both have confirmed.
func (s *service) Complete(ctx context.Context, p auth.Principal, id uuid.UUID) (*Order, error) {
	return s.transition(ctx, "Complete", p, id, Move{Action: ActionComplete})
}

func (s *service) transition(ctx context.Context, method string, p auth.Principal, id uuid.UUID, m Move) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", method),
		zap.String("order_id", id.String()),
	)

	if !p.Authenticated() {
		return nil, ErrUnauthorized
	}

	limit := maxNoteLength
	if m.Action == ActionCancel {
		limit = maxReasonLength
	}
	if err := utils.MaxLen("note", m.Note, limit); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Warn("order lookup failed", zap.Error(err))
		return nil, err
	}

	party, ok := current.PartyOf(p.UserID)
	if !ok {
		log.Warn("caller is not a party to the order")
		return nil, ErrNotParty
	}
	if m.By == "" {
		m.By = party
	} else if m.By != party {
		log.Warn("caller acted for the other party", zap.String("party", string(party)))
		return nil, ErrWrongParty
	}

	next, err := Apply(*current, m, s.now())
	if err != nil {
		s.metrics.Inc("orders_rejected_transitions")
		log.Warn("illegal transition",
			zap.String("status", string(current.Status)),
			zap.String("action", string(m.Action)),
		)
		return nil, err
	}

	if err := s.repo.Transition(ctx, current.Status, &next); err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			s.metrics.Inc("orders_lost_races")
		}
		return nil, err
	}

	s.metrics.Inc("orders_" + string(next.Status))
	s.publish(ctx, events.EventOrderUpdated, current.Status, &next, party)

	log.Info("order transitioned",
		zap.String("from", string(current.Status)),
		zap.String("to", string(next.Status)),
	)
	return &next, nil
}

func (s *service) Get(ctx context.Context, p auth.Principal, id uuid.UUID) (*Order, error) {
	if !p.Authenticated() {
		return nil, ErrUnauthorized
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, ok := o.PartyOf(p.UserID); !ok && !p.IsAdmin() {
		return nil, ErrNotParty
	}
	return o, nil
}

func (s *service) ListForFoodie(ctx context.Context, p auth.Principal, foodieID uuid.UUID) ([]*Order, error) {
	if err := selfOrAdmin(p, foodieID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, ListFilter{FoodieID: &foodieID})
}

func (s *service) ListForCook(ctx context.Context, p auth.Principal, cookID uuid.UUID) ([]*Order, error) {
	if err := selfOrAdmin(p, cookID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, ListFilter{CookID: &cookID})
}

func (s *service) ListAll(ctx context.Context, p auth.Principal) ([]*Order, error) {
	if !p.Authenticated() {
		return nil, ErrUnauthorized
	}
	if !p.IsAdmin() {
		return nil, ErrAdminOnly
	}
	return s.repo.List(ctx, ListFilter{})
}

func selfOrAdmin(p auth.Principal, userID uuid.UUID) error {
	if !p.Authenticated() {
		return ErrUnauthorized
	}
	if !p.Is(userID) && !p.IsAdmin() {
		return ErrNotParty
	}
	return nil
}

func (s *service) ExpireStale(ctx context.Context, before time.Time) (int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ExpireStale"),
	)

	stale, err := s.repo.ListExpirable(ctx, before, expiryBatch)
	if err != nil {
		log.Error("failed to list stale orders", zap.Error(err))
		return 0, err
	}

	expired := 0
	for _, o := range stale {
		next, err := Apply(*o, Move{By: PartySystem, Action: ActionExpire}, s.now())
		if err != nil {
			continue
		}
		if err := s.repo.Transition(ctx, o.Status, &next); err != nil {
			if errors.Is(err, ErrInvalidTransition) {
				// a party acted first
				continue
			}
			log.Error("failed to expire order", zap.String("order_id", o.ID.String()), zap.Error(err))
			return expired, err
		}
		expired++
		s.metrics.Inc("orders_expired")
		s.publish(ctx, events.EventOrderUpdated, o.Status, &next, PartySystem)
	}

	if expired > 0 {
		log.Info("expired stale orders", zap.Int("count", expired))
	}
	return expired, nil
}

// publish is best effort: the transition is already committed.
func (s *service) publish(ctx context.Context, eventType string, prev Status, o *Order, actor Party) {
	evt := events.OrderEvent{
		EventType:  eventType,
		OccurredAt: s.now(),
		OrderID:    o.ID,
		OrderCode:  o.Code,
		Status:     string(o.Status),
		PrevStatus: string(prev),
		MealID:     o.MealID,
		CookID:     o.CookID,
		FoodieID:   o.FoodieID,
		Actor:      string(actor),
	}
	if err := events.PublishJSON(ctx, s.publisher, events.OrderStatusTopic, evt); err != nil {
		s.metrics.Inc("order_events_failed")
		logger.FromCtx(ctx).Warn("failed to publish order event",
			zap.String("order_id", o.ID.String()),
			zap.Error(err),
		)
	}
}
