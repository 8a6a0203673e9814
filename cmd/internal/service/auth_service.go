package service

import (
	"time"

	"schedly/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// DefaultAuthService verifies the single admin credential and issues signed
// access tokens. There are no per-registrant accounts.
type DefaultAuthService struct {
	Username     string
	PasswordHash string
	Secret       []byte
	TokenTTL     time.Duration
	Validate     *validator.Validate
}

func NewAuthService(username, passwordHash, secret string, ttl time.Duration, validate *validator.Validate) *DefaultAuthService {
	return &DefaultAuthService{
		Username:     username,
		PasswordHash: passwordHash,
		Secret:       []byte(secret),
		TokenTTL:     ttl,
		Validate:     validate,
	}
}

func (a *DefaultAuthService) Login(req *LoginRequest) (*LoginResponse, apierror.ErrorResponse) {
	if err := a.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	if req.Username != a.Username {
		return nil, apierror.InvalidCredentialsError
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apierror.InvalidCredentialsError
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   req.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.TokenTTL)),
		ID:        uuid.NewString(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.Secret)
	if err != nil {
		log.Errorf("failed to sign access token: %v", err)
		return nil, apierror.InternalServerError
	}

	return &LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(a.TokenTTL.Seconds()),
	}, nil
}
