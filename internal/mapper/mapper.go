package mapper

import (
	"localbite-be/internal/meal"
	"localbite-be/internal/order"
	"localbite-be/internal/rating"
	"localbite-be/internal/report"
	"localbite-be/internal/review"
	"localbite-be/internal/user"
)

func MapRating(s rating.Summary) RatingDTO {
	return RatingDTO{Average: s.Average, Count: s.Count}
}

func MapUser(u user.User) UserDTO {
	return UserDTO{
		ID:            u.ID.String(),
		UID:           u.UID,
		FullName:      u.FullName,
		Email:         u.Email,
		Role:          string(u.Role),
		Avatar:        u.Avatar,
		LocationLabel: u.LocationLabel,
		IsVerified:    u.IsVerified,
		CookRating:    MapRating(u.CookRating),
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func MapMeal(m meal.Meal) MealDTO {
	dto := MealDTO{
		ID:                m.ID.String(),
		CookID:            m.CookID.String(),
		Name:              m.Name,
		ShortDescription:  m.ShortDescription,
		Description:       m.Description,
		CoverPhotoURL:     m.CoverPhotoURL,
		Ingredients:       nonNil(m.Ingredients),
		Allergens:         nonNil(m.Allergens),
		Tags:              nonNil(m.Tags),
		IsFree:            m.IsFree,
		Price:             m.Price,
		Currency:          m.Currency,
		UnitLabel:         m.UnitLabel,
		DietType:          string(m.DietType),
		Cuisine:           m.Cuisine,
		Availability:      string(m.Availability),
		AvailablePortions: m.AvailablePortions,
		ReadyInMinutes:    m.ReadyInMinutes,
		LocationLabel:     m.LocationLabel,
		Fulfillment:       FulfillmentDTO{Pickup: m.Fulfillment.Pickup, Delivery: m.Fulfillment.Delivery},
		Rating:            MapRating(m.Rating),
		IsDeleted:         m.IsDeleted,
		DeletedAt:         m.DeletedAt,
		DeleteReason:      m.DeleteReason,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}

	if c := m.Cook; c != nil {
		r := MapRating(c.Rating)
		dto.Cook = &UserRefDTO{
			ID:            c.ID.String(),
			FullName:      c.FullName,
			Avatar:        c.Avatar,
			IsVerified:    c.IsVerified,
			LocationLabel: c.LocationLabel,
			Rating:        &r,
		}
	}
	return dto
}

func MapMeals(meals []*meal.Meal) []MealDTO {
	res := make([]MealDTO, 0, len(meals))
	for _, m := range meals {
		res = append(res, MapMeal(*m))
	}
	return res
}

func mapDecision(d order.Decision) DecisionDTO {
	return DecisionDTO{State: string(d.State), DecidedAt: d.DecidedAt, Note: d.Note}
}

func mapOrderUser(u *order.UserRef) *UserRefDTO {
	if u == nil {
		return nil
	}
	return &UserRefDTO{ID: u.ID.String(), FullName: u.FullName, IsVerified: u.IsVerified}
}

func MapOrder(o order.Order) OrderDTO {
	dto := OrderDTO{
		ID:       o.ID.String(),
		Code:     o.Code,
		MealID:   o.MealID.String(),
		CookID:   o.CookID.String(),
		FoodieID: o.FoodieID.String(),
		MealSnapshot: MealSnapshotDTO{
			Name:          o.MealSnapshot.Name,
			UnitLabel:     o.MealSnapshot.UnitLabel,
			Price:         o.MealSnapshot.Price,
			Currency:      o.MealSnapshot.Currency,
			CoverPhotoURL: o.MealSnapshot.CoverPhotoURL,
		},
		Quantity:        o.Quantity,
		FulfillmentType: string(o.FulfillmentType),
		Status:          string(o.Status),
		CookDecision:    mapDecision(o.CookDecision),
		FoodieDecision:  mapDecision(o.FoodieDecision),
		RequestedAt:     o.RequestedAt,
		ConfirmedAt:     o.ConfirmedAt,
		CompletedAt:     o.CompletedAt,
		CancelledAt:     o.CancelledAt,
		HasReview:       o.HasReview,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Cook:            mapOrderUser(o.Cook),
		Foodie:          mapOrderUser(o.Foodie),
	}

	if p := o.Pickup; p != nil {
		dto.Pickup = &PickupDTO{PickupTime: p.PickupTime, PickupNote: p.PickupNote}
	}
	if d := o.Delivery; d != nil {
		dto.Delivery = &DeliveryDTO{AddressLabel: d.AddressLabel, AddressText: d.AddressText, DeliveryNote: d.DeliveryNote}
	}
	if c := o.CancelInfo; c != nil {
		dto.Cancel = &CancelInfoDTO{CancelledBy: string(c.CancelledBy), Reason: c.Reason}
	}
	if m := o.Meal; m != nil {
		dto.Meal = &MealRefDTO{ID: m.ID.String(), Name: m.Name, CoverPhotoURL: m.CoverPhotoURL}
	}
	return dto
}

func MapOrders(orders []*order.Order) []OrderDTO {
	res := make([]OrderDTO, 0, len(orders))
	for _, o := range orders {
		res = append(res, MapOrder(*o))
	}
	return res
}

func mapReviewUser(u *review.UserRef) *UserRefDTO {
	if u == nil {
		return nil
	}
	return &UserRefDTO{ID: u.ID.String(), FullName: u.FullName, Avatar: u.Avatar}
}

func MapReview(r review.Review) ReviewDTO {
	dto := ReviewDTO{
		ID:           r.ID.String(),
		OrderID:      r.OrderID.String(),
		MealID:       r.MealID.String(),
		CookID:       r.CookID.String(),
		FoodieID:     r.FoodieID.String(),
		Rating:       r.Rating,
		Comment:      r.Comment,
		IsHidden:     r.IsHidden,
		HiddenReason: r.HiddenReason,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		Foodie:       mapReviewUser(r.Foodie),
		Cook:         mapReviewUser(r.Cook),
	}
	if m := r.Meal; m != nil {
		dto.Meal = &MealRefDTO{ID: m.ID.String(), Name: m.Name, CoverPhotoURL: m.CoverPhotoURL}
	}
	return dto
}

func MapReviews(reviews []*review.Review) []ReviewDTO {
	res := make([]ReviewDTO, 0, len(reviews))
	for _, r := range reviews {
		res = append(res, MapReview(*r))
	}
	return res
}

func MapReport(r report.Report) ReportDTO {
	dto := ReportDTO{
		ID:             r.ID.String(),
		ReporterID:     r.ReporterID.String(),
		TargetType:     string(r.TargetType),
		TargetID:       r.TargetID.String(),
		Category:       string(r.Category),
		Description:    r.Description,
		Status:         string(r.Status),
		ActionTaken:    string(r.ActionTaken),
		ResolutionNote: r.ResolutionNote,
		ResolvedAt:     r.ResolvedAt,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if r.AssignedTo != nil {
		id := r.AssignedTo.String()
		dto.AssignedTo = &id
	}
	return dto
}

func MapReports(reports []*report.Report) []ReportDTO {
	res := make([]ReportDTO, 0, len(reports))
	for _, r := range reports {
		res = append(res, MapReport(*r))
	}
	return res
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
