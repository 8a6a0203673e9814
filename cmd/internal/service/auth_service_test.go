package service_test

import (
	"testing"
	"time"

	"schedly/cmd/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) *service.DefaultAuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	return service.NewAuthService("admin", string(hash), "test-signing-key", 30*time.Minute, validator.New())
}

func TestLogin(t *testing.T) {
	t.Run("valid credentials yield a parseable token", func(t *testing.T) {
		auth := newAuthService(t)

		resp, apierr := auth.Login(&service.LoginRequest{Username: "admin", Password: "s3cret"})
		require.Nil(t, apierr)
		assert.Equal(t, "bearer", resp.TokenType)
		assert.EqualValues(t, 1800, resp.ExpiresIn)

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(resp.AccessToken, claims, func(t *jwt.Token) (any, error) {
			return []byte("test-signing-key"), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		require.NoError(t, err)
		require.True(t, token.Valid)
		assert.Equal(t, "admin", claims.Subject)
		assert.NotEmpty(t, claims.ID)
		require.NotNil(t, claims.ExpiresAt)
		assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt.Time, time.Minute)
	})

	t.Run("wrong password", func(t *testing.T) {
		auth := newAuthService(t)
		_, apierr := auth.Login(&service.LoginRequest{Username: "admin", Password: "wrong"})
		require.NotNil(t, apierr)
		assert.Equal(t, 401, apierr.Code())
	})

	t.Run("unknown username", func(t *testing.T) {
		auth := newAuthService(t)
		_, apierr := auth.Login(&service.LoginRequest{Username: "root", Password: "s3cret"})
		require.NotNil(t, apierr)
		assert.Equal(t, 401, apierr.Code())
	})

	t.Run("missing fields", func(t *testing.T) {
		auth := newAuthService(t)
		_, apierr := auth.Login(&service.LoginRequest{Username: "admin"})
		require.NotNil(t, apierr)
		assert.Equal(t, 400, apierr.Code())
	})
}
