package rest

import (
	"context"
	"time"

	"localbite-be/internal/auth"
	"localbite-be/internal/meal"
	"localbite-be/internal/order"
	"localbite-be/internal/report"
	"localbite-be/internal/review"
	"localbite-be/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) UpsertMe(ctx context.Context, p auth.Principal, in user.UpsertInput) (*user.User, error) {
	args := m.Called(ctx, p, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) UpdateMe(ctx context.Context, p auth.Principal, params user.UpdateProfileParams) (*user.User, error) {
	args := m.Called(ctx, p, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) SetVerified(ctx context.Context, p auth.Principal, id uuid.UUID, verified bool, note string) (*user.User, error) {
	args := m.Called(ctx, p, id, verified, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockMealService struct {
	mock.Mock
}

func (m *MockMealService) mealResult(args mock.Arguments) (*meal.Meal, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*meal.Meal), args.Error(1)
}

func (m *MockMealService) List(ctx context.Context, f meal.ListFilter) ([]*meal.Meal, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*meal.Meal), args.Error(1)
}

func (m *MockMealService) Get(ctx context.Context, id uuid.UUID) (*meal.Meal, error) {
	return m.mealResult(m.Called(ctx, id))
}

func (m *MockMealService) Create(ctx context.Context, p auth.Principal, in meal.CreateInput) (*meal.Meal, error) {
	return m.mealResult(m.Called(ctx, p, in))
}

func (m *MockMealService) Update(ctx context.Context, p auth.Principal, id uuid.UUID, params meal.UpdateParams) (*meal.Meal, error) {
	return m.mealResult(m.Called(ctx, p, id, params))
}

func (m *MockMealService) Delete(ctx context.Context, p auth.Principal, id uuid.UUID, reason string) error {
	return m.Called(ctx, p, id, reason).Error(0)
}

func (m *MockMealService) UpdateAvailability(ctx context.Context, p auth.Principal, id uuid.UUID, params meal.AvailabilityParams) (*meal.Meal, error) {
	return m.mealResult(m.Called(ctx, p, id, params))
}

func (m *MockMealService) TakeDown(ctx context.Context, p auth.Principal, id uuid.UUID, reason string) (*meal.Meal, error) {
	return m.mealResult(m.Called(ctx, p, id, reason))
}

func (m *MockMealService) Restore(ctx context.Context, p auth.Principal, id uuid.UUID) (*meal.Meal, error) {
	return m.mealResult(m.Called(ctx, p, id))
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) orderResult(args mock.Arguments) (*order.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) ordersResult(args mock.Arguments) ([]*order.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) Create(ctx context.Context, p auth.Principal, in order.CreateInput) (*order.Order, error) {
	return m.orderResult(m.Called(ctx, p, in))
}

func (m *MockOrderService) CookConfirm(ctx context.Context, p auth.Principal, id uuid.UUID, note string) (*order.Order, error) {
	return m.orderResult(m.Called(ctx, p, id, note))
}

func (m *MockOrderService) FoodieConfirm(ctx context.Context, p auth.Principal, id uuid.UUID, note string) (*order.Order, error) {
	return m.orderResult(m.Called(ctx, p, id, note))
}

func (m *MockOrderService) CookCancel(ctx context.Context, p auth.Principal, id uuid.UUID, reason string) (*order.Order, error) {
	return m.orderResult(m.Called(ctx, p, id, reason))
}

func (m *MockOrderService) FoodieCancel(ctx context.Context, p auth.Principal, id uuid.UUID, reason string) (*order.Order, error) {
	return m.orderResult(m.Called(ctx, p, id, reason))
}

func (m *MockOrderService) Complete(ctx context.Context, p auth.Principal, id uuid.UUID) (*order.Order, error) {
	return m.orderResult(m.Called(ctx, p, id))
}

func (m *MockOrderService) Get(ctx context.Context, p auth.Principal, id uuid.UUID) (*order.Order, error) {
	return m.orderResult(m.Called(ctx, p, id))
}

func (m *MockOrderService) ListForFoodie(ctx context.Context, p auth.Principal, foodieID uuid.UUID) ([]*order.Order, error) {
	return m.ordersResult(m.Called(ctx, p, foodieID))
}

func (m *MockOrderService) ListForCook(ctx context.Context, p auth.Principal, cookID uuid.UUID) ([]*order.Order, error) {
	return m.ordersResult(m.Called(ctx, p, cookID))
}

func (m *MockOrderService) ListAll(ctx context.Context, p auth.Principal) ([]*order.Order, error) {
	return m.ordersResult(m.Called(ctx, p))
}

func (m *MockOrderService) ExpireStale(ctx context.Context, before time.Time) (int, error) {
	args := m.Called(ctx, before)
	return args.Int(0), args.Error(1)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) reviewResult(args mock.Arguments) (*review.Review, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Review), args.Error(1)
}

func (m *MockReviewService) Submit(ctx context.Context, p auth.Principal, in review.SubmitInput) (*review.Review, error) {
	return m.reviewResult(m.Called(ctx, p, in))
}

func (m *MockReviewService) Update(ctx context.Context, p auth.Principal, id uuid.UUID, in review.UpdateInput) (*review.Review, error) {
	return m.reviewResult(m.Called(ctx, p, id, in))
}

func (m *MockReviewService) Delete(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	return m.Called(ctx, p, id).Error(0)
}

func (m *MockReviewService) Hide(ctx context.Context, p auth.Principal, id uuid.UUID, reason string) (*review.Review, error) {
	return m.reviewResult(m.Called(ctx, p, id, reason))
}

func (m *MockReviewService) Unhide(ctx context.Context, p auth.Principal, id uuid.UUID) (*review.Review, error) {
	return m.reviewResult(m.Called(ctx, p, id))
}

func (m *MockReviewService) ListByMeal(ctx context.Context, mealID uuid.UUID) ([]*review.Review, error) {
	args := m.Called(ctx, mealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*review.Review), args.Error(1)
}

func (m *MockReviewService) ListByCook(ctx context.Context, cookID uuid.UUID) ([]*review.Review, error) {
	args := m.Called(ctx, cookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*review.Review), args.Error(1)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) reportResult(args mock.Arguments) (*report.Report, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Report), args.Error(1)
}

func (m *MockReportService) Create(ctx context.Context, p auth.Principal, in report.CreateInput) (*report.Report, error) {
	return m.reportResult(m.Called(ctx, p, in))
}

func (m *MockReportService) List(ctx context.Context, p auth.Principal) ([]*report.Report, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*report.Report), args.Error(1)
}

func (m *MockReportService) Get(ctx context.Context, p auth.Principal, id uuid.UUID) (*report.Report, error) {
	return m.reportResult(m.Called(ctx, p, id))
}

func (m *MockReportService) Assign(ctx context.Context, p auth.Principal, id uuid.UUID) (*report.Report, error) {
	return m.reportResult(m.Called(ctx, p, id))
}

func (m *MockReportService) Resolve(ctx context.Context, p auth.Principal, id uuid.UUID, in report.ResolveInput) (*report.Report, error) {
	return m.reportResult(m.Called(ctx, p, id, in))
}

func (m *MockReportService) Reject(ctx context.Context, p auth.Principal, id uuid.UUID, note string) (*report.Report, error) {
	return m.reportResult(m.Called(ctx, p, id, note))
}
