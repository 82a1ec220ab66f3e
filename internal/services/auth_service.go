package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"infocomm/internal/apperr"
	"infocomm/internal/caching"
	"infocomm/internal/models"
	"infocomm/internal/repositories"
	"infocomm/internal/session"
)

// rejectionMessage is shown for every credential failure. It never says
// whether the username or the password was wrong.
const rejectionMessage = "Identifiant ou mot de passe incorrect"

// AuthService validates credentials and manages JWT token lifecycles. It is
// the session store's CredentialValidator.
type AuthService interface {
	Validate(ctx context.Context, username, password string) (*session.Session, error)
	GenerateTokens(ctx context.Context, s *session.Session) (*models.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.TokenResponse, error)
	RevokeToken(ctx context.Context, refreshToken string) error
}

// SessionClaims are the JWT claims carried by access tokens.
type SessionClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	userRepo   repositories.UserRepository
	cacheSvc   caching.CacheService
	jwtSecret  []byte
	tokenTTL   time.Duration
	refreshTTL time.Duration
}

func NewAuthService(userRepo repositories.UserRepository, cacheSvc caching.CacheService, jwtSecret string, tokenTTL, refreshTTL time.Duration) AuthService {
	return &authService{
		userRepo:   userRepo,
		cacheSvc:   cacheSvc,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		refreshTTL: refreshTTL,
	}
}

// Validate resolves a username/password pair into a session record. Every
// rejection carries the same message; the password never reaches a log line.
func (s *authService) Validate(ctx context.Context, username, password string) (*session.Session, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		slog.Debug("login lookup failed", "username", username)
		return nil, apperr.Authf(rejectionMessage)
	}

	if user.Status != "active" {
		return nil, apperr.Authf(rejectionMessage)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Authf(rejectionMessage)
	}

	role, err := session.ParseRole(user.Role)
	if err != nil {
		return nil, apperr.Authf(rejectionMessage)
	}

	if err := s.userRepo.UpdateLastConnection(ctx, user.ID); err != nil {
		slog.Warn("failed to update last connection", "username", username, "error", err)
	}

	return &session.Session{
		ID:       user.ID,
		Username: user.Username,
		Role:     role,
	}, nil
}

// GenerateTokens issues an access/refresh token pair for an authenticated
// session.
func (s *authService) GenerateTokens(ctx context.Context, sess *session.Session) (*models.TokenResponse, error) {
	now := time.Now()
	tokenID := uuid.NewString()

	claims := SessionClaims{
		Username: sess.Username,
		Role:     string(sess.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "infocomm-auth",
			Subject:   sess.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        tokenID,
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessTokenString, err := accessToken.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign JWT: %w", err)
	}

	refreshToken := s.generateSecureToken()
	refreshTokenHash := s.hashToken(refreshToken)

	refreshData := fmt.Sprintf("%s:%d", sess.ID.String(), now.Add(s.refreshTTL).Unix())
	cacheKey := fmt.Sprintf("infocomm:refresh:%s", refreshTokenHash)
	if err := s.cacheSvc.SetString(ctx, cacheKey, refreshData, s.refreshTTL); err != nil {
		slog.Warn("failed to store refresh token", "username", sess.Username, "error", err)
		// Token generation still succeeded.
	}

	return &models.TokenResponse{
		AccessToken:  accessTokenString,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.tokenTTL.Seconds()),
		RefreshToken: refreshToken,
		UserID:       sess.ID.String(),
		IssuedAt:     now,
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair. The old
// refresh token is consumed either way.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	refreshTokenHash := s.hashToken(refreshToken)
	cacheKey := fmt.Sprintf("infocomm:refresh:%s", refreshTokenHash)

	data, err := s.cacheSvc.GetString(ctx, cacheKey)
	if err != nil || data == "" {
		return nil, apperr.Authf("invalid refresh token")
	}

	parts := strings.Split(data, ":")
	if len(parts) != 2 {
		return nil, apperr.Authf("invalid refresh token")
	}

	expiry, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || time.Now().Unix() > expiry {
		_ = s.cacheSvc.Delete(ctx, cacheKey)
		return nil, apperr.Authf("refresh token expired")
	}

	userID, err := uuid.Parse(parts[0])
	if err != nil {
		return nil, apperr.Authf("invalid refresh token")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperr.Authf("invalid refresh token")
	}

	role, err := session.ParseRole(user.Role)
	if err != nil {
		return nil, apperr.Authf("invalid refresh token")
	}

	if err := s.cacheSvc.Delete(ctx, cacheKey); err != nil {
		slog.Warn("failed to consume refresh token", "error", err)
	}

	return s.GenerateTokens(ctx, &session.Session{
		ID:       user.ID,
		Username: user.Username,
		Role:     role,
	})
}

// RevokeToken invalidates a refresh token. Revoking an unknown token is not
// an error.
func (s *authService) RevokeToken(ctx context.Context, refreshToken string) error {
	cacheKey := fmt.Sprintf("infocomm:refresh:%s", s.hashToken(refreshToken))
	return s.cacheSvc.Delete(ctx, cacheKey)
}

func (s *authService) generateSecureToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

func (s *authService) hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
