package user

import (
	"context"
	"net/mail"
	"strings"

	"localbite-be/internal/audit"
	"localbite-be/internal/auth"
	"localbite-be/internal/db"
	"localbite-be/internal/logger"
	"localbite-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	UpsertMe(ctx context.Context, p auth.Principal, in UpsertInput) (*User, error)
	Get(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateMe(ctx context.Context, p auth.Principal, params UpdateProfileParams) (*User, error)
	SetVerified(ctx context.Context, p auth.Principal, id uuid.UUID, verified bool, note string) (*User, error)
}

type service struct {
	repo  Repository
	tx    db.Transactor
	audit audit.Recorder
}

func NewService(repo Repository, tx db.Transactor, recorder audit.Recorder) Service {
	return &service{repo: repo, tx: tx, audit: recorder}
}

// UpsertMe creates or refreshes the caller's profile. The role always comes
// from the verified token.
func (s *service) UpsertMe(ctx context.Context, p auth.Principal, in UpsertInput) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpsertMe"),
	)

	if !p.Authenticated() {
		return nil, ErrUnauthorized
	}

	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if err := utils.FirstErr(
		utils.Required("fullName", in.FullName),
		utils.MaxLen("fullName", in.FullName, maxFullNameLength),
		utils.Required("email", in.Email),
		utils.MaxLen("locationLabel", in.LocationLabel, maxLocationLength),
		utils.MaxLen("avatar", in.Avatar, maxAvatarLength),
	); err != nil {
		log.Warn("invalid profile input", zap.Error(err))
		return nil, err
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		log.Warn("invalid email", zap.String("email", in.Email))
		return nil, ErrInvalidEmail
	}

	u, err := s.repo.Upsert(ctx, &User{
		ID:            p.UserID,
		UID:           in.UID,
		FullName:      in.FullName,
		Email:         in.Email,
		Role:          p.Role,
		Avatar:        in.Avatar,
		LocationLabel: in.LocationLabel,
	})
	if err != nil {
		return nil, err
	}

	log.Info("user profile saved", zap.String("user_id", u.ID.String()))
	return u, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) UpdateMe(ctx context.Context, p auth.Principal, params UpdateProfileParams) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateMe"),
	)

	if !p.Authenticated() {
		return nil, ErrUnauthorized
	}
	if params.FullName == nil && params.LocationLabel == nil && params.Avatar == nil {
		return nil, ErrNothingToApply
	}

	params.FullName = utils.TrimPtr(params.FullName)
	if params.FullName != nil {
		if err := utils.Required("fullName", *params.FullName); err != nil {
			return nil, err
		}
	}
	if err := utils.FirstErr(
		utils.MaxLen("fullName", utils.PtrString(params.FullName), maxFullNameLength),
		utils.MaxLen("locationLabel", utils.PtrString(params.LocationLabel), maxLocationLength),
		utils.MaxLen("avatar", utils.PtrString(params.Avatar), maxAvatarLength),
	); err != nil {
		log.Warn("invalid profile update", zap.Error(err))
		return nil, err
	}

	u, err := s.repo.UpdateProfile(ctx, p.UserID, params)
	if err != nil {
		log.Error("failed to update profile", zap.Error(err))
		return nil, err
	}
	return u, nil
}

// SetVerified flips the verified badge and records the admin action in the
// same transaction.
func (s *service) SetVerified(ctx context.Context, p auth.Principal, id uuid.UUID, verified bool, note string) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SetVerified"),
		zap.String("target_user_id", id.String()),
		zap.Bool("verified", verified),
	)

	if !p.IsAdmin() {
		log.Warn("non-admin tried to change verification")
		return nil, ErrAdminOnly
	}

	action := audit.ActionVerifyUser
	if !verified {
		action = audit.ActionUnverifyUser
	}

	var out *User
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		u, err := s.repo.SetVerified(ctx, id, verified)
		if err != nil {
			return err
		}
		if err := s.audit.Record(ctx, p.UserID, action, audit.TargetUser, id, note); err != nil {
			return err
		}
		out = u
		return nil
	})
	if err != nil {
		log.Error("failed to set verification", zap.Error(err))
		return nil, err
	}

	log.Info("user verification changed")
	return out, nil
}
