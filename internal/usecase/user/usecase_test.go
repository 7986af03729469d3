package user

import (
	"context"
	"testing"

	domain "farm-gateway/internal/domain/user"
	apperrors "farm-gateway/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// MockStore is a mock implementation of the Store interface
type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockStore) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func setupTest(t *testing.T) (*Service, *MockStore) {
	store := new(MockStore)
	return New(store, zaptest.NewLogger(t)), store
}

func TestLookup(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc, store := setupTest(t)
		store.On("GetByEmail", mock.Anything, "a@b.com").
			Return(&domain.User{Email: "a@b.com", Name: "A"}, nil)

		resp, err := svc.Lookup(context.Background(), LookupRequest{Email: "a@b.com"})
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, "A", resp.Name)
	})

	t.Run("unknown email is not an error", func(t *testing.T) {
		svc, store := setupTest(t)
		store.On("GetByEmail", mock.Anything, "nobody@b.com").Return(nil, nil)

		resp, err := svc.Lookup(context.Background(), LookupRequest{Email: "nobody@b.com"})
		assert.NoError(t, err)
		assert.Nil(t, resp)
	})

	t.Run("invalid email rejected before store call", func(t *testing.T) {
		svc, store := setupTest(t)

		_, err := svc.Lookup(context.Background(), LookupRequest{Email: "not-an-email"})
		var badReq *apperrors.BadRequestError
		assert.ErrorAs(t, err, &badReq)
		store.AssertNotCalled(t, "GetByEmail")
	})

	t.Run("store failure propagates", func(t *testing.T) {
		svc, store := setupTest(t)
		store.On("GetByEmail", mock.Anything, "a@b.com").
			Return(nil, apperrors.NewUpstreamError("identity", nil))

		_, err := svc.Lookup(context.Background(), LookupRequest{Email: "a@b.com"})
		var upstream *apperrors.UpstreamError
		assert.ErrorAs(t, err, &upstream)
	})
}

func TestCreate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, store := setupTest(t)
		store.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "a@b.com" && u.Name == "A"
		})).Return(&domain.User{Email: "a@b.com", Name: "A"}, nil)

		resp, err := svc.Create(context.Background(), CreateRequest{Email: "a@b.com", Name: "A"})
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", resp.Email)
	})

	t.Run("duplicate email yields conflict", func(t *testing.T) {
		svc, store := setupTest(t)
		store.On("Create", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewConflictError("user", ""))

		_, err := svc.Create(context.Background(), CreateRequest{Email: "a@b.com", Name: "A"})
		var conflict *apperrors.ConflictError
		assert.ErrorAs(t, err, &conflict)
	})

	t.Run("create is not idempotent", func(t *testing.T) {
		svc, store := setupTest(t)
		store.On("Create", mock.Anything, mock.Anything).
			Return(&domain.User{Email: "a@b.com", Name: "A"}, nil).Once()
		store.On("Create", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewConflictError("user", "")).Once()

		_, err := svc.Create(context.Background(), CreateRequest{Email: "a@b.com", Name: "A"})
		assert.NoError(t, err)

		_, err = svc.Create(context.Background(), CreateRequest{Email: "a@b.com", Name: "A"})
		var conflict *apperrors.ConflictError
		assert.ErrorAs(t, err, &conflict)
	})

	t.Run("missing name rejected before store call", func(t *testing.T) {
		svc, store := setupTest(t)

		_, err := svc.Create(context.Background(), CreateRequest{Email: "a@b.com"})
		var badReq *apperrors.BadRequestError
		assert.ErrorAs(t, err, &badReq)
		store.AssertNotCalled(t, "Create")
	})
}
