package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/roster-api/internal/domain"
	"github.com/phrazzld/roster-api/internal/mocks"
	"github.com/phrazzld/roster-api/internal/service"
	"github.com/phrazzld/roster-api/internal/store"
)

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	newService := func(jwt *mocks.MockJWTService) (service.AuthService, *mocks.MockUserStore) {
		users := mocks.NewMockUserStore(
			domain.NewUser("alice", "alice@example.com", "hashed:s3cret", "Alice", nil),
		)
		return service.NewAuthService(users, &mocks.MockPasswordHasher{}, jwt, nil), users
	}

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()
		var gotUsername string
		jwt := &mocks.MockJWTService{
			GenerateTokenFn: func(ctx context.Context, username string) (string, error) {
				gotUsername = username
				return "signed-token", nil
			},
		}
		svc, _ := newService(jwt)

		token, err := svc.Login(context.Background(), "alice", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "signed-token", token)
		assert.Equal(t, "alice", gotUsername)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		svc, _ := newService(&mocks.MockJWTService{Token: "unused"})

		_, err := svc.Login(context.Background(), "alice", "nope")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()
		svc, _ := newService(&mocks.MockJWTService{Token: "unused"})

		_, err := svc.Login(context.Background(), "ghost", "s3cret")
		assert.ErrorIs(t, err, service.ErrUnknownUser)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		svc, users := newService(&mocks.MockJWTService{})
		dbErr := errors.New("connection reset")
		users.GetByUsernameFn = func(ctx context.Context, username string) (*domain.User, error) {
			return nil, store.NewStoreError("user", "get", dbErr)
		}

		_, err := svc.Login(context.Background(), "alice", "s3cret")
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, service.ErrUnknownUser)
	})

	t.Run("token failure", func(t *testing.T) {
		t.Parallel()
		tokenErr := errors.New("signing failed")
		svc, _ := newService(&mocks.MockJWTService{Err: tokenErr})

		_, err := svc.Login(context.Background(), "alice", "s3cret")
		assert.ErrorIs(t, err, tokenErr)
	})
}
