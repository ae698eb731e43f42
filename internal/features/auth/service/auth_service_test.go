package service

import (
	"testing"
	"time"

	"cargoconnect/internal/features/auth/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *AuthService {
	t.Helper()
	admin, err := domain.NewAdmin("admin@cargoconnect.com", "Admin@123")
	require.NoError(t, err)
	return NewAuthService(admin, "test-secret")
}

func TestAuthService_Login(t *testing.T) {
	svc := newTestService(t)

	t.Run("Success", func(t *testing.T) {
		token, exp, err := svc.Login("admin@cargoconnect.com", "Admin@123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.WithinDuration(t, time.Now().UTC().Add(12*time.Hour), exp, time.Minute)

		email, err := svc.Authenticate(token)
		require.NoError(t, err)
		assert.Equal(t, "admin@cargoconnect.com", email)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, _, err := svc.Login("admin@cargoconnect.com", "wrong")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("WrongEmail", func(t *testing.T) {
		_, _, err := svc.Login("other@cargoconnect.com", "Admin@123")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("FailureCauseIndistinguishable", func(t *testing.T) {
		_, _, emailErr := svc.Login("other@cargoconnect.com", "Admin@123")
		_, _, passErr := svc.Login("admin@cargoconnect.com", "wrong")
		assert.Equal(t, emailErr, passErr)
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	svc := newTestService(t)

	t.Run("Malformed", func(t *testing.T) {
		_, err := svc.Authenticate("not-a-token")
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		admin, err := domain.NewAdmin("admin@cargoconnect.com", "Admin@123")
		require.NoError(t, err)
		forger := NewAuthService(admin, "other-secret")

		token, _, err := forger.Login("admin@cargoconnect.com", "Admin@123")
		require.NoError(t, err)

		_, err = svc.Authenticate(token)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("Expired", func(t *testing.T) {
		issued := time.Now().UTC()
		svc.now = func() time.Time { return issued }

		token, _, err := svc.Login("admin@cargoconnect.com", "Admin@123")
		require.NoError(t, err)

		// Still valid just before expiry.
		svc.now = func() time.Time { return issued.Add(12*time.Hour - time.Minute) }
		_, err = svc.Authenticate(token)
		assert.NoError(t, err)

		// Rejected after expiry.
		svc.now = func() time.Time { return issued.Add(12*time.Hour + time.Minute) }
		_, err = svc.Authenticate(token)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})
}
