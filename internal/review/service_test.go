package review

import (
	"context"
	"errors"
	"sort"
	"testing"

	"localbite-be/internal/apperror"
	"localbite-be/internal/audit"
	"localbite-be/internal/auth"
	"localbite-be/internal/db"
	"localbite-be/internal/order"
	"localbite-be/internal/rating"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ---- mocks ----

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, r *Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Review), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id uuid.UUID, rating int, comment string) error {
	return m.Called(ctx, id, rating, comment).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) SetHidden(ctx context.Context, id uuid.UUID, hidden bool, reason string, by *uuid.UUID) error {
	return m.Called(ctx, id, hidden, reason, by).Error(0)
}

func (m *MockRepository) ListVisible(ctx context.Context, f ListFilter) ([]*Review, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Review), args.Error(1)
}

type MockAggregator struct {
	mock.Mock
}

func (m *MockAggregator) RecalcForCook(ctx context.Context, cookID uuid.UUID) (rating.Summary, error) {
	args := m.Called(ctx, cookID)
	return args.Get(0).(rating.Summary), args.Error(1)
}

func (m *MockAggregator) RecalcForMeal(ctx context.Context, mealID uuid.UUID) (rating.Summary, error) {
	args := m.Called(ctx, mealID)
	return args.Get(0).(rating.Summary), args.Error(1)
}

func (m *MockAggregator) RecalcForReview(ctx context.Context, cookID, mealID uuid.UUID) error {
	return m.Called(ctx, cookID, mealID).Error(0)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, actorID uuid.UUID, action audit.Action, target audit.TargetType, targetID uuid.UUID, note string) error {
	return m.Called(ctx, actorID, action, target, targetID, note).Error(0)
}

type inlineTx struct{}

func (inlineTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ---- in-memory fakes ----

// fakeOrders holds orders by id and mimics the has_review CAS.
type fakeOrders struct {
	orders map[uuid.UUID]*order.Order
	err    error
}

func (f *fakeOrders) GetByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrders) MarkReviewed(_ context.Context, id uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	o, ok := f.orders[id]
	if !ok || o.Status != order.StatusCompleted || o.HasReview {
		return order.ErrAlreadyReviewed
	}
	o.HasReview = true
	return nil
}

// memStore backs both the review repository and the rating repository so
// recalculation sees what the service wrote.
type memStore struct {
	reviews map[uuid.UUID]*Review
	cooks   map[uuid.UUID]rating.Summary
	meals   map[uuid.UUID]rating.Summary
}

func newMemStore() *memStore {
	return &memStore{
		reviews: map[uuid.UUID]*Review{},
		cooks:   map[uuid.UUID]rating.Summary{},
		meals:   map[uuid.UUID]rating.Summary{},
	}
}

func (s *memStore) Create(_ context.Context, r *Review) error {
	for _, existing := range s.reviews {
		if existing.OrderID == r.OrderID {
			return ErrDuplicateReview
		}
	}
	cp := *r
	s.reviews[r.ID] = &cp
	return nil
}

func (s *memStore) GetByID(_ context.Context, id uuid.UUID) (*Review, error) {
	r, ok := s.reviews[id]
	if !ok {
		return nil, ErrReviewNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *memStore) Update(_ context.Context, id uuid.UUID, rating int, comment string) error {
	r, ok := s.reviews[id]
	if !ok {
		return ErrReviewNotFound
	}
	r.Rating, r.Comment = rating, comment
	return nil
}

func (s *memStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.reviews[id]; !ok {
		return ErrReviewNotFound
	}
	delete(s.reviews, id)
	return nil
}

func (s *memStore) SetHidden(_ context.Context, id uuid.UUID, hidden bool, reason string, by *uuid.UUID) error {
	r, ok := s.reviews[id]
	if !ok {
		return ErrReviewNotFound
	}
	r.IsHidden, r.HiddenReason, r.HiddenBy = hidden, reason, by
	return nil
}

func (s *memStore) ListVisible(_ context.Context, f ListFilter) ([]*Review, error) {
	out := make([]*Review, 0)
	for _, r := range s.reviews {
		if r.IsHidden {
			continue
		}
		if f.MealID != nil && r.MealID != *f.MealID {
			continue
		}
		if f.CookID != nil && r.CookID != *f.CookID {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (s *memStore) visible(match func(*Review) bool) []int {
	out := make([]int, 0)
	for _, r := range s.reviews {
		if !r.IsHidden && match(r) {
			out = append(out, r.Rating)
		}
	}
	return out
}

func (s *memStore) VisibleRatingsForCook(_ context.Context, cookID uuid.UUID) ([]int, error) {
	return s.visible(func(r *Review) bool { return r.CookID == cookID }), nil
}

func (s *memStore) VisibleRatingsForMeal(_ context.Context, mealID uuid.UUID) ([]int, error) {
	return s.visible(func(r *Review) bool { return r.MealID == mealID }), nil
}

func (s *memStore) SaveCookSummary(_ context.Context, cookID uuid.UUID, sum rating.Summary) error {
	s.cooks[cookID] = sum
	return nil
}

func (s *memStore) SaveMealSummary(_ context.Context, mealID uuid.UUID, sum rating.Summary) error {
	s.meals[mealID] = sum
	return nil
}

type fixture struct {
	store  *memStore
	orders *fakeOrders
	rec    *MockRecorder
	svc    Service

	cook   auth.Principal
	foodie auth.Principal
	admin  auth.Principal
	mealID uuid.UUID
}

func newFixture() *fixture {
	f := &fixture{
		store:  newMemStore(),
		orders: &fakeOrders{orders: map[uuid.UUID]*order.Order{}},
		rec:    new(MockRecorder),
		cook:   auth.Principal{UserID: uuid.New(), Role: auth.RoleCook},
		foodie: auth.Principal{UserID: uuid.New(), Role: auth.RoleFoodie},
		admin:  auth.Principal{UserID: uuid.New(), Role: auth.RoleAdmin},
		mealID: uuid.New(),
	}
	f.svc = NewService(f.store, f.orders, inlineTx{}, rating.NewAggregator(f.store), f.rec)
	return f
}

func (f *fixture) addOrder(status order.Status) *order.Order {
	o := &order.Order{
		ID:       uuid.New(),
		MealID:   f.mealID,
		CookID:   f.cook.UserID,
		FoodieID: f.foodie.UserID,
		Status:   status,
	}
	f.orders.orders[o.ID] = o
	return o
}

// ---- tests ----

func TestService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("Completed order gets reviewed and ratings recalculated", func(t *testing.T) {
		f := newFixture()
		first := f.addOrder(order.StatusCompleted)
		second := f.addOrder(order.StatusCompleted)

		rv, err := f.svc.Submit(ctx, f.foodie, SubmitInput{OrderID: first.ID, Rating: 5, Comment: "Excellent"})
		require.NoError(t, err)
		assert.Equal(t, 5, rv.Rating)
		assert.Equal(t, f.cook.UserID, rv.CookID)
		assert.Equal(t, f.mealID, rv.MealID)
		assert.True(t, f.orders.orders[first.ID].HasReview)
		assert.Equal(t, rating.Summary{Average: 5, Count: 1}, f.store.cooks[f.cook.UserID])

		_, err = f.svc.Submit(ctx, f.foodie, SubmitInput{OrderID: second.ID, Rating: 4})
		require.NoError(t, err)
		assert.Equal(t, rating.Summary{Average: 4.5, Count: 2}, f.store.cooks[f.cook.UserID])
		assert.Equal(t, rating.Summary{Average: 4.5, Count: 2}, f.store.meals[f.mealID])
	})

	t.Run("Second review of the same order is rejected", func(t *testing.T) {
		f := newFixture()
		o := f.addOrder(order.StatusCompleted)

		_, err := f.svc.Submit(ctx, f.foodie, SubmitInput{OrderID: o.ID, Rating: 5})
		require.NoError(t, err)

		_, err = f.svc.Submit(ctx, f.foodie, SubmitInput{OrderID: o.ID, Rating: 1})
		assert.ErrorIs(t, err, ErrAlreadyReviewed)
		assert.Equal(t, rating.Summary{Average: 5, Count: 1}, f.store.cooks[f.cook.UserID])
	})

	t.Run("Order not completed", func(t *testing.T) {
		f := newFixture()
		o := f.addOrder(order.StatusConfirmed)

		_, err := f.svc.Submit(ctx, f.foodie, SubmitInput{OrderID: o.ID, Rating: 5})
		assert.ErrorIs(t, err, ErrOrderNotCompleted)
		assert.True(t, apperror.Is(err, apperror.KindInvalidState))
		assert.Empty(t, f.store.reviews)
	})

	t.Run("Only the order's foodie may review", func(t *testing.T) {
		f := newFixture()
		o := f.addOrder(order.StatusCompleted)

		_, err := f.svc.Submit(ctx, f.cook, SubmitInput{OrderID: o.ID, Rating: 5})
		assert.ErrorIs(t, err, ErrNotOrderFoodie)
		assert.True(t, apperror.Is(err, apperror.KindPermissionDenied))
	})

	t.Run("Unknown order", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Submit(ctx, f.foodie, SubmitInput{OrderID: uuid.New(), Rating: 5})
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})

	t.Run("Input validation", func(t *testing.T) {
		f := newFixture()
		o := f.addOrder(order.StatusCompleted)

		_, err := f.svc.Submit(ctx, auth.Principal{}, SubmitInput{OrderID: o.ID, Rating: 5})
		assert.ErrorIs(t, err, ErrUnauthorized)

		_, err = f.svc.Submit(ctx, f.foodie, SubmitInput{Rating: 5})
		assert.ErrorIs(t, err, ErrMissingOrder)

		for _, r := range []int{0, 6, -1} {
			_, err = f.svc.Submit(ctx, f.foodie, SubmitInput{OrderID: o.ID, Rating: r})
			assert.ErrorIs(t, err, ErrInvalidRating)
		}

		long := make([]byte, maxCommentLength+1)
		for i := range long {
			long[i] = 'a'
		}
		_, err = f.svc.Submit(ctx, f.foodie, SubmitInput{OrderID: o.ID, Rating: 5, Comment: string(long)})
		assert.True(t, apperror.Is(err, apperror.KindValidation))

		assert.False(t, f.orders.orders[o.ID].HasReview)
	})

	t.Run("Lost has_review race", func(t *testing.T) {
		f := newFixture()
		o := f.addOrder(order.StatusCompleted)
		f.orders.err = order.ErrAlreadyReviewed

		_, err := f.svc.Submit(ctx, f.foodie, SubmitInput{OrderID: o.ID, Rating: 5})
		assert.ErrorIs(t, err, order.ErrAlreadyReviewed)
	})
}

func TestService_Submit_RollsBackOnRecalcFailure(t *testing.T) {
	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	cookID, foodieID, mealID := uuid.New(), uuid.New(), uuid.New()
	o := &order.Order{ID: uuid.New(), MealID: mealID, CookID: cookID, FoodieID: foodieID, Status: order.StatusCompleted}
	orders := &fakeOrders{orders: map[uuid.UUID]*order.Order{o.ID: o}}

	svc := NewService(
		NewRepository(sqlDB),
		orders,
		db.NewTransactor(sqlDB),
		rating.NewAggregator(rating.NewRepository(sqlDB)),
		new(MockRecorder),
	)

	sqlMock.ExpectBegin()
	sqlMock.ExpectQuery(`INSERT INTO reviews`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}))
	sqlMock.ExpectRollback()

	_, err = svc.Submit(context.Background(), auth.Principal{UserID: foodieID, Role: auth.RoleFoodie},
		SubmitInput{OrderID: o.ID, Rating: 4})
	assert.Error(t, err)
	assert.False(t, o.HasReview)

	sqlMock.ExpectBegin()
	sqlMock.ExpectQuery(`INSERT INTO reviews`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(o.RequestedAt, o.RequestedAt))
	sqlMock.ExpectQuery(`SELECT rating FROM reviews WHERE cook_id = \$1`).
		WithArgs(cookID).
		WillReturnError(errors.New("connection reset"))
	sqlMock.ExpectRollback()

	_, err = svc.Submit(context.Background(), auth.Principal{UserID: foodieID, Role: auth.RoleFoodie},
		SubmitInput{OrderID: o.ID, Rating: 4})
	assert.Error(t, err)

	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()

	submit := func(t *testing.T, f *fixture, r int) (*order.Order, *Review) {
		o := f.addOrder(order.StatusCompleted)
		rv, err := f.svc.Submit(ctx, f.foodie, SubmitInput{OrderID: o.ID, Rating: r})
		require.NoError(t, err)
		return o, rv
	}

	t.Run("Update recalculates", func(t *testing.T) {
		f := newFixture()
		_, rv := submit(t, f, 5)
		submit(t, f, 3)

		out, err := f.svc.Update(ctx, f.foodie, rv.ID, UpdateInput{Rating: intPtr(1)})
		require.NoError(t, err)
		assert.Equal(t, 1, out.Rating)
		assert.Equal(t, rating.Summary{Average: 2, Count: 2}, f.store.cooks[f.cook.UserID])
	})

	t.Run("Update keeps fields not supplied", func(t *testing.T) {
		f := newFixture()
		o := f.addOrder(order.StatusCompleted)
		rv, err := f.svc.Submit(ctx, f.foodie, SubmitInput{OrderID: o.ID, Rating: 4, Comment: "Good"})
		require.NoError(t, err)

		comment := "Very good"
		out, err := f.svc.Update(ctx, f.foodie, rv.ID, UpdateInput{Comment: &comment})
		require.NoError(t, err)
		assert.Equal(t, 4, out.Rating)
		assert.Equal(t, "Very good", out.Comment)
	})

	t.Run("Update rejections", func(t *testing.T) {
		f := newFixture()
		_, rv := submit(t, f, 5)

		_, err := f.svc.Update(ctx, f.foodie, rv.ID, UpdateInput{})
		assert.ErrorIs(t, err, ErrNothingToApply)

		_, err = f.svc.Update(ctx, f.foodie, rv.ID, UpdateInput{Rating: intPtr(9)})
		assert.ErrorIs(t, err, ErrInvalidRating)

		_, err = f.svc.Update(ctx, f.cook, rv.ID, UpdateInput{Rating: intPtr(1)})
		assert.ErrorIs(t, err, ErrNotReviewer)

		_, err = f.svc.Update(ctx, f.foodie, uuid.New(), UpdateInput{Rating: intPtr(1)})
		assert.ErrorIs(t, err, ErrReviewNotFound)
	})

	t.Run("Delete recalculates and keeps has_review", func(t *testing.T) {
		f := newFixture()
		o, rv := submit(t, f, 5)
		submit(t, f, 3)

		require.NoError(t, f.svc.Delete(ctx, f.foodie, rv.ID))
		assert.Equal(t, rating.Summary{Average: 3, Count: 1}, f.store.cooks[f.cook.UserID])
		assert.True(t, f.orders.orders[o.ID].HasReview)

		_, err := f.svc.Submit(ctx, f.foodie, SubmitInput{OrderID: o.ID, Rating: 5})
		assert.ErrorIs(t, err, ErrAlreadyReviewed)
	})

	t.Run("Delete by someone else", func(t *testing.T) {
		f := newFixture()
		_, rv := submit(t, f, 5)

		assert.ErrorIs(t, f.svc.Delete(ctx, f.cook, rv.ID), ErrNotReviewer)
		assert.ErrorIs(t, f.svc.Delete(ctx, auth.Principal{}, rv.ID), ErrUnauthorized)
	})
}

func TestService_HideUnhide(t *testing.T) {
	ctx := context.Background()

	t.Run("Hidden reviews leave the averages", func(t *testing.T) {
		f := newFixture()
		o1 := f.addOrder(order.StatusCompleted)
		o2 := f.addOrder(order.StatusCompleted)
		bad, err := f.svc.Submit(ctx, f.foodie, SubmitInput{OrderID: o1.ID, Rating: 1})
		require.NoError(t, err)
		_, err = f.svc.Submit(ctx, f.foodie, SubmitInput{OrderID: o2.ID, Rating: 5})
		require.NoError(t, err)

		f.rec.On("Record", ctx, f.admin.UserID, audit.ActionHideReview, audit.TargetReview, bad.ID, "abusive").
			Return(nil).Once()

		hidden, err := f.svc.Hide(ctx, f.admin, bad.ID, "  abusive ")
		require.NoError(t, err)
		assert.True(t, hidden.IsHidden)
		require.NotNil(t, hidden.HiddenBy)
		assert.Equal(t, f.admin.UserID, *hidden.HiddenBy)
		assert.Equal(t, rating.Summary{Average: 5, Count: 1}, f.store.cooks[f.cook.UserID])
		assert.Equal(t, rating.Summary{Average: 5, Count: 1}, f.store.meals[f.mealID])

		visible, err := f.svc.ListByMeal(ctx, f.mealID)
		require.NoError(t, err)
		assert.Len(t, visible, 1)

		f.rec.On("Record", ctx, f.admin.UserID, audit.ActionRestoreReview, audit.TargetReview, bad.ID, "").
			Return(nil).Once()

		shown, err := f.svc.Unhide(ctx, f.admin, bad.ID)
		require.NoError(t, err)
		assert.False(t, shown.IsHidden)
		assert.Nil(t, shown.HiddenBy)
		assert.Equal(t, rating.Summary{Average: 3, Count: 2}, f.store.cooks[f.cook.UserID])

		f.rec.AssertExpectations(t)
	})

	t.Run("Admin only", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Hide(ctx, f.cook, uuid.New(), "spam")
		assert.ErrorIs(t, err, ErrAdminOnly)

		_, err = f.svc.Unhide(ctx, f.foodie, uuid.New())
		assert.ErrorIs(t, err, ErrAdminOnly)
		f.rec.AssertNotCalled(t, "Record")
	})

	t.Run("Audit failure aborts", func(t *testing.T) {
		repo := new(MockRepository)
		agg := new(MockAggregator)
		rec := new(MockRecorder)
		svc := NewService(repo, &fakeOrders{}, inlineTx{}, agg, rec)

		admin := auth.Principal{UserID: uuid.New(), Role: auth.RoleAdmin}
		rv := &Review{ID: uuid.New(), CookID: uuid.New(), MealID: uuid.New()}

		repo.On("GetByID", ctx, rv.ID).Return(rv, nil)
		repo.On("SetHidden", ctx, rv.ID, true, "spam", &admin.UserID).Return(nil)
		rec.On("Record", ctx, admin.UserID, audit.ActionHideReview, audit.TargetReview, rv.ID, "spam").
			Return(errors.New("audit down"))

		_, err := svc.Hide(ctx, admin, rv.ID, "spam")
		assert.Error(t, err)
		agg.AssertNotCalled(t, "RecalcForReview", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewService(repo, &fakeOrders{}, inlineTx{}, new(MockAggregator), new(MockRecorder))

	cookID := uuid.New()
	want := []*Review{{ID: uuid.New(), CookID: cookID}}
	repo.On("ListVisible", ctx, ListFilter{CookID: &cookID}).Return(want, nil)

	got, err := svc.ListByCook(ctx, cookID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func intPtr(v int) *int { return &v }
