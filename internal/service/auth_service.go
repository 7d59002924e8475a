package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gradtrack/gradtrack-api/internal/dto"
	"github.com/gradtrack/gradtrack-api/internal/models"
	"github.com/gradtrack/gradtrack-api/internal/repository"
)

var (
	// ErrEmailTaken indicates a registration attempt with an email that
	// already has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials indicates a failed login. The cause (unknown
	// email or wrong password) is deliberately not distinguished.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidRefreshToken indicates the refresh token failed
	// verification or has expired.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

const bcryptCost = 12

// TokenSettings carries signing material and lifetimes for issued tokens.
type TokenSettings struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
}

// AuthService owns account registration and token issuance. Refresh tokens
// are stateless JWTs signed with a separate secret.
type AuthService interface {
	Register(ctx context.Context, payload dto.RegisterRequest) (dto.TokenResponse, error)
	Login(ctx context.Context, payload dto.LoginRequest) (dto.TokenResponse, error)
	Refresh(ctx context.Context, payload dto.RefreshRequest) (dto.TokenResponse, error)
}

type authService struct {
	users     repository.UserRepository
	validator *validator.Validate
	tokens    TokenSettings
	logger    zerolog.Logger
	now       func() time.Time
}

func NewAuthService(users repository.UserRepository, validate *validator.Validate, tokens TokenSettings, logger zerolog.Logger) AuthService {
	return &authService{
		users:     users,
		validator: validate,
		tokens:    tokens,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Register(ctx context.Context, payload dto.RegisterRequest) (dto.TokenResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TokenResponse{}, err
	}

	role, err := models.RoleFromTitle(payload.Role)
	if err != nil {
		return dto.TokenResponse{}, ErrInvalidRole
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return dto.TokenResponse{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.TokenResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcryptCost)
	if err != nil {
		return dto.TokenResponse{}, fmt.Errorf("hashing password: %w", err)
	}

	user := models.User{
		Name:         strings.TrimSpace(payload.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.users.Create(ctx, &user); err != nil {
		return dto.TokenResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("role", string(user.Role)).Msg("account registered")

	return s.issueTokens(user)
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.TokenResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TokenResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TokenResponse{}, ErrInvalidCredentials
		}
		return dto.TokenResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		return dto.TokenResponse{}, ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

func (s *authService) Refresh(ctx context.Context, payload dto.RefreshRequest) (dto.TokenResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TokenResponse{}, err
	}

	token, err := jwt.Parse(payload.RefreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(s.tokens.RefreshSecret), nil
	})
	if err != nil || !token.Valid {
		return dto.TokenResponse{}, ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return dto.TokenResponse{}, ErrInvalidRefreshToken
	}

	subject, _ := claims["sub"].(string)
	userID, err := strconv.ParseUint(subject, 10, 64)
	if err != nil {
		return dto.TokenResponse{}, ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, uint(userID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TokenResponse{}, ErrInvalidRefreshToken
		}
		return dto.TokenResponse{}, err
	}

	return s.issueTokens(user)
}

func (s *authService) issueTokens(user models.User) (dto.TokenResponse, error) {
	now := s.now()

	accessClaims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(user.ID), 10),
		"email": user.Email,
		"role":  string(user.Role),
		"iss":   s.tokens.Issuer,
		"iat":   jwt.NewNumericDate(now),
		"exp":   jwt.NewNumericDate(now.Add(s.tokens.AccessTTL)),
		"jti":   uuid.NewString(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(s.tokens.AccessSecret))
	if err != nil {
		return dto.TokenResponse{}, fmt.Errorf("signing access token: %w", err)
	}

	refreshClaims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(user.ID), 10),
		"iss": s.tokens.Issuer,
		"iat": jwt.NewNumericDate(now),
		"exp": jwt.NewNumericDate(now.Add(s.tokens.RefreshTTL)),
		"jti": uuid.NewString(),
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(s.tokens.RefreshSecret))
	if err != nil {
		return dto.TokenResponse{}, fmt.Errorf("signing refresh token: %w", err)
	}

	return dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.tokens.AccessTTL.Seconds()),
		User:         dto.NewUserResponse(user),
	}, nil
}
