package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/dwproject/portfolio-api/internal/domain"
)

// UserStore defines the user data access interface consumed by AuthService.
type UserStore interface {
	Create(ctx context.Context, username, email, passwordHash string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Exists(ctx context.Context, username, email string) (bool, error)
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// AuthService handles registration, login and bearer token issue/verify.
// Tokens are stateless: the server keeps no session table, so a leaked token
// stays valid until its natural expiry.
type AuthService struct {
	users     UserStore
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, cfg AuthConfig) *AuthService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &AuthService{
		users:     users,
		jwtSecret: []byte(cfg.JWTSecret),
		tokenTTL:  ttl,
	}
}

// Register creates a new user and returns it together with a fresh token.
// A username or email already in use fails with ErrUserExists.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, string, error) {
	exists, err := s.users.Exists(ctx, username, email)
	if err != nil {
		return nil, "", fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return nil, "", domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, username, email, string(hash))
	if err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies the credentials and returns the user with a fresh token.
// Unknown username and wrong password collapse into the same error so the
// response does not reveal which one failed.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// IssueToken signs a bearer token embedding the user's id and username,
// valid for the configured duration from now.
func (s *AuthService) IssueToken(user *domain.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies the signature and expiry of a bearer token and
// returns the identity it encodes. Any failure mode (bad signature,
// malformed payload, expiry) reports ErrUnauthenticated.
func (s *AuthService) ValidateToken(tokenString string) (domain.Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return domain.Identity{}, domain.ErrUnauthenticated
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return domain.Identity{}, domain.ErrUnauthenticated
	}

	return domain.Identity{ID: int64(sub), Username: username}, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}
