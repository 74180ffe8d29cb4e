package meal

import (
	"context"
	"strings"

	"localbite-be/internal/audit"
	"localbite-be/internal/auth"
	"localbite-be/internal/db"
	"localbite-be/internal/logger"
	"localbite-be/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, f ListFilter) ([]*Meal, error)
	Get(ctx context.Context, id uuid.UUID) (*Meal, error)
	Create(ctx context.Context, p auth.Principal, in CreateInput) (*Meal, error)
	Update(ctx context.Context, p auth.Principal, id uuid.UUID, params UpdateParams) (*Meal, error)
	Delete(ctx context.Context, p auth.Principal, id uuid.UUID, reason string) error
	UpdateAvailability(ctx context.Context, p auth.Principal, id uuid.UUID, params AvailabilityParams) (*Meal, error)
	TakeDown(ctx context.Context, p auth.Principal, id uuid.UUID, reason string) (*Meal, error)
	Restore(ctx context.Context, p auth.Principal, id uuid.UUID) (*Meal, error)
}

type service struct {
	repo  Repository
	tx    db.Transactor
	audit audit.Recorder
}

func NewService(repo Repository, tx db.Transactor, recorder audit.Recorder) Service {
	return &service{repo: repo, tx: tx, audit: recorder}
}

func (s *service) List(ctx context.Context, f ListFilter) ([]*Meal, error) {
	f.Search = strings.TrimSpace(f.Search)
	if f.DietType != "" && !f.DietType.Valid() {
		return nil, ErrInvalidDietType
	}
	if f.Availability != "" && !f.Availability.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.repo.List(ctx, f)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Meal, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Create(ctx context.Context, p auth.Principal, in CreateInput) (*Meal, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
	)

	if !p.Authenticated() {
		return nil, ErrUnauthorized
	}
	if p.Role != auth.RoleCook {
		log.Warn("non-cook tried to create a meal", zap.String("role", string(p.Role)))
		return nil, ErrCookOnly
	}

	m := &Meal{
		ID:                uuid.New(),
		CookID:            p.UserID,
		Name:              strings.TrimSpace(in.Name),
		ShortDescription:  in.ShortDescription,
		Description:       in.Description,
		CoverPhotoURL:     in.CoverPhotoURL,
		Ingredients:       in.Ingredients,
		Allergens:         in.Allergens,
		Tags:              in.Tags,
		IsFree:            in.IsFree,
		Price:             in.Price,
		Currency:          in.Currency,
		UnitLabel:         in.UnitLabel,
		DietType:          in.DietType,
		Cuisine:           in.Cuisine,
		Availability:      Available,
		AvailablePortions: in.AvailablePortions,
		ReadyInMinutes:    in.ReadyInMinutes,
		LocationLabel:     in.LocationLabel,
		Fulfillment:       FulfillmentOptions{Pickup: true},
	}
	if m.Currency == "" {
		m.Currency = defaultCurrency
	}
	if m.UnitLabel == "" {
		m.UnitLabel = defaultUnitLabel
	}
	if m.DietType == "" {
		m.DietType = DietOther
	}
	if in.Pickup != nil {
		m.Fulfillment.Pickup = *in.Pickup
	}
	if in.Delivery != nil {
		m.Fulfillment.Delivery = *in.Delivery
	}
	if m.IsFree {
		m.Price = decimal.Zero
	}

	if err := validateMeal(m); err != nil {
		log.Warn("invalid meal", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Create(ctx, m)
	if err != nil {
		log.Error("failed to create meal", zap.Error(err))
		return nil, err
	}

	log.Info("meal created", zap.String("meal_id", created.ID.String()))
	return created, nil
}

func validateMeal(m *Meal) error {
	if err := utils.FirstErr(
		utils.Required("name", m.Name),
		utils.MaxLen("name", m.Name, maxNameLength),
		utils.MaxLen("shortDescription", m.ShortDescription, maxShortDescLength),
		utils.MaxLen("description", m.Description, maxDescriptionLength),
		utils.MaxLen("currency", m.Currency, maxCurrencyLength),
		utils.MaxLen("unitLabel", m.UnitLabel, maxUnitLabelLength),
		utils.MaxLen("cuisine", m.Cuisine, maxCuisineLength),
		utils.MaxLen("locationLabel", m.LocationLabel, maxLocationLength),
	); err != nil {
		return err
	}
	if m.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if !m.DietType.Valid() {
		return ErrInvalidDietType
	}
	if m.AvailablePortions != nil && *m.AvailablePortions < 0 {
		return ErrInvalidPortions
	}
	if m.ReadyInMinutes < 0 {
		return ErrInvalidReadyTime
	}
	if !m.Fulfillment.Pickup && !m.Fulfillment.Delivery {
		return ErrNoFulfillment
	}
	return nil
}

// owned loads a live meal and checks that p is its cook.
func (s *service) owned(ctx context.Context, p auth.Principal, id uuid.UUID) (*Meal, error) {
	if !p.Authenticated() {
		return nil, ErrUnauthorized
	}
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Is(m.CookID) {
		return nil, ErrNotOwner
	}
	return m, nil
}

func (s *service) Update(ctx context.Context, p auth.Principal, id uuid.UUID, params UpdateParams) (*Meal, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.String("meal_id", id.String()),
	)

	current, err := s.owned(ctx, p, id)
	if err != nil {
		log.Warn("meal update rejected", zap.Error(err))
		return nil, err
	}

	if params == (UpdateParams{}) {
		return nil, ErrNothingToApply
	}
	if params.IsFree != nil && *params.IsFree {
		zero := decimal.Zero
		params.Price = &zero
	}
	params.Name = utils.TrimPtr(params.Name)

	// validate the merged result so partial updates cannot break invariants
	merged := applyUpdate(*current, params)
	if err := validateMeal(&merged); err != nil {
		log.Warn("invalid meal update", zap.Error(err))
		return nil, err
	}

	if err := s.repo.Update(ctx, id, params); err != nil {
		log.Error("failed to update meal", zap.Error(err))
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func applyUpdate(m Meal, p UpdateParams) Meal {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.ShortDescription != nil {
		m.ShortDescription = *p.ShortDescription
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.IsFree != nil {
		m.IsFree = *p.IsFree
	}
	if p.Price != nil {
		m.Price = *p.Price
	}
	if p.Currency != nil {
		m.Currency = *p.Currency
	}
	if p.UnitLabel != nil {
		m.UnitLabel = *p.UnitLabel
	}
	if p.DietType != nil {
		m.DietType = *p.DietType
	}
	if p.Cuisine != nil {
		m.Cuisine = *p.Cuisine
	}
	if p.ReadyInMinutes != nil {
		m.ReadyInMinutes = *p.ReadyInMinutes
	}
	if p.LocationLabel != nil {
		m.LocationLabel = *p.LocationLabel
	}
	if p.Pickup != nil {
		m.Fulfillment.Pickup = *p.Pickup
	}
	if p.Delivery != nil {
		m.Fulfillment.Delivery = *p.Delivery
	}
	return m
}

func (s *service) Delete(ctx context.Context, p auth.Principal, id uuid.UUID, reason string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Delete"),
		zap.String("meal_id", id.String()),
	)

	if _, err := s.owned(ctx, p, id); err != nil {
		log.Warn("meal delete rejected", zap.Error(err))
		return err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = defaultDeleteReason
	}
	if err := utils.MaxLen("reason", reason, maxReasonLength); err != nil {
		return err
	}

	if err := s.repo.SoftDelete(ctx, id, nil, reason); err != nil {
		log.Error("failed to delete meal", zap.Error(err))
		return err
	}

	log.Info("meal deleted")
	return nil
}

func (s *service) UpdateAvailability(ctx context.Context, p auth.Principal, id uuid.UUID, params AvailabilityParams) (*Meal, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateAvailability"),
		zap.String("meal_id", id.String()),
	)

	if params.Status == nil && params.Portions == nil {
		return nil, ErrNothingToApply
	}
	if params.Status != nil && !params.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if params.Portions != nil && *params.Portions < 0 {
		return nil, ErrInvalidPortions
	}

	if _, err := s.owned(ctx, p, id); err != nil {
		log.Warn("availability update rejected", zap.Error(err))
		return nil, err
	}

	if err := s.repo.UpdateAvailability(ctx, id, params); err != nil {
		log.Error("failed to update availability", zap.Error(err))
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// TakeDown hides a meal on moderation grounds. Works on already deleted
// meals too, overwriting the delete reason.
func (s *service) TakeDown(ctx context.Context, p auth.Principal, id uuid.UUID, reason string) (*Meal, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "TakeDown"),
		zap.String("meal_id", id.String()),
	)

	if !p.IsAdmin() {
		log.Warn("non-admin tried to take down a meal")
		return nil, ErrAdminOnly
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = defaultTakeDown
	}
	reason = utils.Truncate(reason, maxReasonLength)

	var out *Meal
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.SoftDelete(ctx, id, &p.UserID, reason); err != nil {
			return err
		}
		if err := s.audit.Record(ctx, p.UserID, audit.ActionTakeDownMeal, audit.TargetMeal, id, reason); err != nil {
			return err
		}
		m, err := s.repo.FindIncludingDeleted(ctx, id)
		out = m
		return err
	})
	if err != nil {
		log.Error("failed to take down meal", zap.Error(err))
		return nil, err
	}

	log.Info("meal taken down")
	return out, nil
}

func (s *service) Restore(ctx context.Context, p auth.Principal, id uuid.UUID) (*Meal, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Restore"),
		zap.String("meal_id", id.String()),
	)

	if !p.IsAdmin() {
		log.Warn("non-admin tried to restore a meal")
		return nil, ErrAdminOnly
	}

	var out *Meal
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Restore(ctx, id); err != nil {
			return err
		}
		if err := s.audit.Record(ctx, p.UserID, audit.ActionRestoreMeal, audit.TargetMeal, id, ""); err != nil {
			return err
		}
		m, err := s.repo.FindByID(ctx, id)
		out = m
		return err
	})
	if err != nil {
		log.Error("failed to restore meal", zap.Error(err))
		return nil, err
	}

	log.Info("meal restored")
	return out, nil
}
