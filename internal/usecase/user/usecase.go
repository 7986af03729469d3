package user

import (
	"context"

	"go.uber.org/zap"

	domain "farm-gateway/internal/domain/user"
	apperrors "farm-gateway/pkg/errors"

	"github.com/go-playground/validator/v10"
)

// Store defines the interface for the external identity/user store.
// It abstracts the backing service, allowing a test double to stand in
// for the real HTTP client.
type Store interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error) // Retrieve user by email, nil on miss
	Create(ctx context.Context, u *domain.User) (*domain.User, error)   // Register a new user
}

// Service implements the identity business logic. It validates requests
// and delegates to the external user store; the store owns all records.
type Service struct {
	store    Store
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new identity service backed by the provided store.
func New(store Store, log *zap.Logger) *Service {
	return &Service{store: store, log: log, validate: validator.New()}
}

// Lookup retrieves the user record for an email address. A lookup miss is
// a valid outcome and returns (nil, nil), never an error.
func (s *Service) Lookup(ctx context.Context, in LookupRequest) (*Response, error) {
	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("lookup validation failed", zap.Error(err))
		return nil, apperrors.NewBadRequestError("email", "a valid email address is required")
	}

	u, err := s.store.GetByEmail(ctx, in.Email)
	if err != nil {
		s.log.Error("user lookup failed", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}
	if u == nil {
		s.log.Debug("user not found", zap.String("email", in.Email))
		return nil, nil
	}

	return &Response{Email: u.Email, Name: u.Name}, nil
}

// Create registers a new user record with the identity store. Creation is
// not idempotent: the store rejects a duplicate email with a conflict.
func (s *Service) Create(ctx context.Context, in CreateRequest) (*Response, error) {
	s.log.Info("creating user", zap.String("email", in.Email), zap.String("name", in.Name))

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("create validation failed", zap.Error(err))
		return nil, apperrors.NewBadRequestError("", "email and name are required, email must be valid")
	}

	u, err := s.store.Create(ctx, &domain.User{Email: in.Email, Name: in.Name})
	if err != nil {
		s.log.Warn("user create failed", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}

	return &Response{Email: u.Email, Name: u.Name}, nil
}
