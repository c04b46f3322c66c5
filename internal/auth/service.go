package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/matty-app/matty-backend/config"
	"github.com/matty-app/matty-backend/internal/store"
	"github.com/matty-app/matty-backend/internal/user"
	"github.com/matty-app/matty-backend/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid token")
)

// Store is the slice of the data store the auth service needs.
type Store interface {
	CreateUser(ctx context.Context, u user.User, passwordHash string) (user.User, error)
	FetchUser(ctx context.Context, id string) (user.User, error)
	FetchUserByEmail(ctx context.Context, email string) (user.User, string, error)
}

type Service interface {
	Register(ctx context.Context, in RegisterRequest) (*TokenPair, user.User, error)
	Login(ctx context.Context, in LoginRequest) (*TokenPair, user.User, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	VerifyAccessToken(tokenStr string) (string, error)
}

type service struct {
	store         Store
	cfg           *config.Config
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(s Store, cfg *config.Config) Service {
	accessTTL := time.Duration(cfg.JWTAccessTTLHours) * time.Hour
	if accessTTL == 0 {
		accessTTL = time.Hour
	}
	refreshTTL := time.Duration(cfg.JWTRefreshTTLHours) * time.Hour
	if refreshTTL == 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &service{
		store:         s,
		cfg:           cfg,
		accessSecret:  cfg.JWTAccessSecret,
		refreshSecret: cfg.JWTRefreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// =============================
// Register
// =============================

func (s *service) Register(ctx context.Context, in RegisterRequest) (*TokenPair, user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, user.User{}, err
	}

	u, err := s.store.CreateUser(ctx, user.User{
		Name:  in.Name,
		Email: in.Email,
		About: in.About,
	}, string(hash))
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			return nil, user.User{}, ErrEmailTaken
		}
		return nil, user.User{}, err
	}

	pair, err := s.tokenPair(u.ID)
	if err != nil {
		return nil, user.User{}, err
	}

	// Welcome email is best effort and must not block registration.
	go func() {
		body := fmt.Sprintf(
			"Hi %s,\n\nWelcome to Matty! Pick your interests and find an event near you: %s\n",
			u.Name, config.BaseURL,
		)
		if err := utils.SendEmail(s.cfg, u.Email, "Welcome to Matty 🎉", body); err != nil {
			log.Printf("⚠️ Welcome email to %s failed: %v", u.Email, err)
		}
	}()

	return pair, u, nil
}

// =============================
// Login
// =============================

func (s *service) Login(ctx context.Context, in LoginRequest) (*TokenPair, user.User, error) {
	u, hash, err := s.store.FetchUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, user.User{}, ErrInvalidCredentials
		}
		return nil, user.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(in.Password)); err != nil {
		return nil, user.User{}, ErrInvalidCredentials
	}

	pair, err := s.tokenPair(u.ID)
	if err != nil {
		return nil, user.User{}, err
	}
	return pair, u, nil
}

func (s *service) tokenPair(userID string) (*TokenPair, error) {
	access, err := s.signToken(userID, s.accessSecret, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(userID, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *service) signToken(userID, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// =============================
// Refresh
// =============================

func (s *service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := parseUserID(refreshToken, s.refreshSecret)
	if err != nil {
		return "", err
	}

	// The account must still exist for the refresh to succeed.
	if _, err := s.store.FetchUser(ctx, userID); err != nil {
		return "", ErrInvalidToken
	}

	return s.signToken(userID, s.accessSecret, s.accessTTL)
}

// VerifyAccessToken validates an access token and returns the viewer id.
func (s *service) VerifyAccessToken(tokenStr string) (string, error) {
	return parseUserID(tokenStr, s.accessSecret)
}

func parseUserID(tokenStr, secret string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}
