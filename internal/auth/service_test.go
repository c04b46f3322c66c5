package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/matty-app/matty-backend/config"
	"github.com/matty-app/matty-backend/internal/store"
)

func testService() Service {
	cfg := &config.Config{
		JWTAccessSecret:  "access-secret",
		JWTRefreshSecret: "refresh-secret",
	}
	return NewService(store.NewMemory(), cfg)
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	pair, u, err := svc.Register(ctx, RegisterRequest{
		Name:     "Dev",
		Email:    "dev@example.com",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("Register should issue both tokens")
	}
	if u.ID == "" {
		t.Fatal("Register should return the stored user")
	}

	loginPair, loginUser, err := svc.Login(ctx, LoginRequest{
		Email:    "dev@example.com",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if loginUser.ID != u.ID {
		t.Errorf("login user = %q, want %q", loginUser.ID, u.ID)
	}
	if loginPair.AccessToken == "" {
		t.Error("Login should issue an access token")
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, RegisterRequest{Name: "Dev", Email: "dev@example.com", Password: "hunter2hunter2"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, _, err := svc.Login(ctx, LoginRequest{Email: "dev@example.com", Password: "wrong-password"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}

	_, _, err = svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	req := RegisterRequest{Name: "Dev", Email: "dev@example.com", Password: "hunter2hunter2"}
	if _, _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, _, err := svc.Register(ctx, req); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestVerifyAccessToken(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	pair, u, err := svc.Register(ctx, RegisterRequest{Name: "Dev", Email: "dev@example.com", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	viewerID, err := svc.VerifyAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if viewerID != u.ID {
		t.Errorf("viewer = %q, want %q", viewerID, u.ID)
	}

	// Refresh tokens are signed with a different secret and must not pass.
	if _, err := svc.VerifyAccessToken(pair.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("refresh-as-access err = %v, want ErrInvalidToken", err)
	}
	if _, err := svc.VerifyAccessToken("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage token err = %v, want ErrInvalidToken", err)
	}
}

func TestRefresh(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	pair, u, err := svc.Register(ctx, RegisterRequest{Name: "Dev", Email: "dev@example.com", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	access, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	viewerID, err := svc.VerifyAccessToken(access)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if viewerID != u.ID {
		t.Errorf("viewer = %q, want %q", viewerID, u.ID)
	}

	if _, err := svc.Refresh(ctx, pair.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("access-as-refresh err = %v, want ErrInvalidToken", err)
	}
}
