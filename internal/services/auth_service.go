package services

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/dto"
	"storefront/internal/repositories"
)

// AuthService implements the credential state machine: login moves a user to
// an active session (refresh token + expiry persisted), refresh rotates the
// token, revoke clears it.
type AuthService struct {
	db         *gorm.DB
	secret     []byte
	issuer     string
	audience   string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewAuthService creates an AuthService from the JWT configuration.
func NewAuthService(db *gorm.DB, cfg config.Config) *AuthService {
	return &AuthService{
		db:         db,
		secret:     []byte(cfg.JWTSecret),
		issuer:     cfg.JWTIssuer,
		audience:   cfg.JWTAudience,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}
}

// Login verifies the credentials and, on success, issues an access token and
// a fresh refresh token, persisting the refresh state on the user. Any
// failure maps to ErrInvalidCredentials.
func (s *AuthService) Login(username, password string) (*dto.LoginResponse, error) {
	uow, err := repositories.NewUnitOfWork(s.db)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := uow.Users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, expiresAt, err := s.generateAccessToken(user.Username, user.Email, user.RoleNames())
	if err != nil {
		return nil, err
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		return nil, err
	}
	user.RefreshToken = &refreshToken
	user.RefreshTokenExpiry = time.Now().Add(s.refreshTTL)

	if err := uow.Users.Update(user); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		Expiration:   expiresAt,
	}, nil
}

// Refresh exchanges an expired-but-signed access token and the current
// refresh token for a new pair. The old refresh token becomes invalid; the
// stored expiry is not extended. Any mismatch maps to ErrInvalidToken.
func (s *AuthService) Refresh(accessToken, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.claimsFromExpiredToken(accessToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	username, _ := claims["sub"].(string)
	if username == "" {
		return nil, ErrInvalidToken
	}

	uow, err := repositories.NewUnitOfWork(s.db)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := uow.Users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil || user.RefreshToken == nil || *user.RefreshToken != refreshToken ||
		!user.RefreshTokenExpiry.After(time.Now()) {
		return nil, ErrInvalidToken
	}

	newAccessToken, _, err := s.generateAccessToken(user.Username, user.Email, user.RoleNames())
	if err != nil {
		return nil, err
	}
	newRefreshToken, err := generateRefreshToken()
	if err != nil {
		return nil, err
	}
	user.RefreshToken = &newRefreshToken

	if err := uow.Users.Update(user); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// Revoke clears the named user's refresh token. Idempotent: revoking a user
// with no active session still succeeds.
func (s *AuthService) Revoke(username string) error {
	uow, err := repositories.NewUnitOfWork(s.db)
	if err != nil {
		return err
	}
	defer uow.Rollback()

	user, err := uow.Users.GetByUsername(username)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	user.RefreshToken = nil
	if err := uow.Users.Update(user); err != nil {
		return err
	}
	return uow.Commit()
}

// ValidateToken parses an access token for request authentication, checking
// signature, expiry (no skew tolerance), issuer and audience.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, s.keyFunc)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyIssuer(s.issuer, true) || !claims.VerifyAudience(s.audience, true) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// claimsFromExpiredToken recovers the claims of an access token whose expiry
// may have passed. Signature, issuer and audience are still enforced.
func (s *AuthService) claimsFromExpiredToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, s.keyFunc)
	if err != nil {
		ve, ok := err.(*jwt.ValidationError)
		if !ok || ve.Errors&^jwt.ValidationErrorExpired != 0 {
			return nil, err
		}
	}
	if token == nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyIssuer(s.issuer, true) || !claims.VerifyAudience(s.audience, true) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) generateAccessToken(username, email string, roles []string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.accessTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   username,
		"email": email,
		"jti":   uuid.NewString(),
		"roles": roles,
		"iss":   s.issuer,
		"aud":   s.audience,
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *AuthService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return s.secret, nil
}

// generateRefreshToken produces a 64-byte opaque secret, base64 encoded.
func generateRefreshToken() (string, error) {
	buf := make([]byte, 64)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}
