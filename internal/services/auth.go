package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/agrisight/agrisight-backend/internal/logger"
	"github.com/agrisight/agrisight-backend/internal/repos"
	"github.com/agrisight/agrisight-backend/internal/requestdata"
	"github.com/agrisight/agrisight-backend/internal/types"
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type ManualLoginInput struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type tokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// ManualLogin upserts the identity by email; the OAuth handshake proper
	// lives outside this service.
	ManualLogin(ctx context.Context, input ManualLoginInput) (*types.User, *TokenPair, error)
	GenerateTokens(ctx context.Context, user *types.User) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	log           *logger.Logger
	userRepo      repos.UserRepo
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	log *logger.Logger,
	userRepo repos.UserRepo,
	accessSecret string,
	refreshSecret string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		log:           log.With("service", "AuthService"),
		userRepo:      userRepo,
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) ManualLogin(ctx context.Context, input ManualLoginInput) (*types.User, *TokenPair, error) {
	displayName := strings.TrimSpace(input.Name)
	if displayName == "" {
		displayName = strings.SplitN(input.Email, "@", 2)[0]
	}

	user, err := as.userRepo.UpsertByEmail(ctx, nil, &types.User{
		ID:    uuid.New(),
		Email: strings.ToLower(strings.TrimSpace(input.Email)),
		Name:  displayName,
		Role:  types.ParseUserRole(input.Role),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("upsert user: %w", err)
	}

	tokens, err := as.GenerateTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

func (as *authService) GenerateTokens(ctx context.Context, user *types.User) (*TokenPair, error) {
	accessToken, err := as.signToken(user, as.accessSecret, as.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refreshToken, err := as.signToken(user, as.refreshSecret, as.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	if err := as.userRepo.SetRefreshToken(ctx, nil, user.ID, &refreshToken); err != nil {
		return nil, fmt.Errorf("persist refresh token: %w", err)
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (as *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := as.parseToken(refreshToken, as.refreshSecret)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token subject: %w", err)
	}

	user, err := as.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load user for refresh: %w", err)
	}
	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return nil, fmt.Errorf("refresh token does not match stored token")
	}
	return as.GenerateTokens(ctx, user)
}

func (as *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	return as.userRepo.SetRefreshToken(ctx, nil, userID, nil)
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims, err := as.parseToken(tokenString, as.accessSecret)
	if err != nil {
		return ctx, fmt.Errorf("invalid access token: %w", err)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("invalid token subject: %w", err)
	}

	user, err := as.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return ctx, fmt.Errorf("user not found")
	}

	rd := &requestdata.RequestData{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) signToken(user *types.User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Email: user.Email,
		Role:  string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (as *authService) parseToken(tokenString string, secret []byte) (*tokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
