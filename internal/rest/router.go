package rest

import (
	"net/http"

	"localbite-be/internal/auth"
	"localbite-be/internal/logger"
	"localbite-be/internal/meal"
	"localbite-be/internal/metrics"
	"localbite-be/internal/middleware"
	"localbite-be/internal/order"
	"localbite-be/internal/report"
	"localbite-be/internal/review"
	"localbite-be/internal/user"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Deps struct {
	Users   user.Service
	Meals   meal.Service
	Orders  order.Service
	Reviews review.Service
	Reports report.Service

	Metrics    *metrics.Registry
	Limiter    *middleware.RateLimiter
	JWTSecret  string
	CORSOrigin string
}

type Handler struct {
	users   user.Service
	meals   meal.Service
	orders  order.Service
	reviews review.Service
	reports report.Service
	metrics *metrics.Registry
}

func NewRouter(d Deps) http.Handler {
	if d.Metrics == nil {
		d.Metrics = metrics.NewRegistry()
	}

	h := &Handler{
		users:   d.Users,
		meals:   d.Meals,
		orders:  d.Orders,
		reviews: d.Reviews,
		reports: d.Reports,
		metrics: d.Metrics,
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(logger.RequestIDMiddleware)
	r.Use(middleware.CORS(d.CORSOrigin))
	r.Use(middleware.Auth(d.JWTSecret))
	r.Use(middleware.Logging(d.Metrics))
	if d.Limiter != nil {
		r.Use(d.Limiter.Middleware)
	}

	r.Get("/health", h.Health)
	r.Get("/metrics", h.Metrics)
	h.RegisterRoutes(r)

	return r
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Put("/me", h.UpsertMe)
		r.Patch("/me", h.UpdateMe)
		r.Get("/{id}", h.GetUser)
		r.Patch("/{id}/verify", h.VerifyUser)
		r.Patch("/{id}/unverify", h.UnverifyUser)
	})

	r.Route("/meals", func(r chi.Router) {
		r.Get("/", h.ListMeals)
		r.Post("/", h.CreateMeal)
		r.Get("/{id}", h.GetMeal)
		r.Patch("/{id}", h.UpdateMeal)
		r.Delete("/{id}", h.DeleteMeal)
		r.Patch("/{id}/availability", h.UpdateAvailability)
		r.Patch("/{id}/takedown", h.TakeDownMeal)
		r.Patch("/{id}/restore", h.RestoreMeal)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/", h.ListOrders)
		r.Get("/foodie/{foodieId}", h.ListFoodieOrders)
		r.Get("/cook/{cookId}", h.ListCookOrders)
		r.Get("/{id}", h.GetOrder)
		r.Post("/{id}/cook/confirm", h.CookConfirm)
		r.Post("/{id}/cook/cancel", h.CookCancel)
		r.Post("/{id}/foodie/confirm", h.FoodieConfirm)
		r.Post("/{id}/foodie/cancel", h.FoodieCancel)
		r.Post("/{id}/complete", h.CompleteOrder)
	})

	r.Route("/reviews", func(r chi.Router) {
		r.Post("/", h.SubmitReview)
		r.Get("/meal/{mealId}", h.ListMealReviews)
		r.Get("/cook/{cookId}", h.ListCookReviews)
		r.Patch("/{id}", h.UpdateReview)
		r.Delete("/{id}", h.DeleteReview)
		r.Patch("/{id}/hide", h.HideReview)
		r.Patch("/{id}/unhide", h.UnhideReview)
	})

	r.Route("/reports", func(r chi.Router) {
		r.Get("/", h.ListReports)
		r.Post("/", h.CreateReport)
		r.Get("/{id}", h.GetReport)
		r.Patch("/{id}/assign", h.AssignReport)
		r.Patch("/{id}/resolve", h.ResolveReport)
		r.Patch("/{id}/reject", h.RejectReport)
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.metrics.Snapshot())
}

// principal returns the caller, or the zero principal for anonymous requests.
// Services reject the zero principal where authentication is required.
func principal(r *http.Request) auth.Principal {
	p, _ := auth.PrincipalFrom(r.Context())
	return p
}
