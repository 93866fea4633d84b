package usecase

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

type mockJWTGenerator struct {
	GenerateTokenFunc func(subject string) (string, error)
}

func (m *mockJWTGenerator) GenerateToken(subject string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(subject)
	}
	return "signed-token", nil
}

func testCreds(t *testing.T, username, password string) Credentials {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return Credentials{Username: username, PasswordHash: string(hash)}
}

func TestLogin_Success(t *testing.T) {
	creds := testCreds(t, "admin", "correct horse battery staple")

	gen := &mockJWTGenerator{
		GenerateTokenFunc: func(subject string) (string, error) {
			if subject != "admin" {
				t.Errorf("unexpected subject: %s", subject)
			}
			return "signed-token", nil
		},
	}

	u := NewAdminUsecase(creds, gen)
	token, err := u.Login(context.Background(), "admin", "correct horse battery staple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "signed-token" {
		t.Errorf("unexpected token: %s", token)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	creds := testCreds(t, "admin", "rightpassword")

	u := NewAdminUsecase(creds, &mockJWTGenerator{})
	_, err := u.Login(context.Background(), "admin", "wrongpassword")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_WrongUsername(t *testing.T) {
	creds := testCreds(t, "admin", "rightpassword")

	u := NewAdminUsecase(creds, &mockJWTGenerator{})
	_, err := u.Login(context.Background(), "intruder", "rightpassword")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_EmptyConfiguredUsername(t *testing.T) {
	// 管理者アカウント未設定時は空ユーザー名でもログインできない
	u := NewAdminUsecase(Credentials{}, &mockJWTGenerator{})
	_, err := u.Login(context.Background(), "", "")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_TokenGenerationFailure(t *testing.T) {
	creds := testCreds(t, "admin", "rightpassword")
	wantErr := errors.New("sign failed")
	gen := &mockJWTGenerator{
		GenerateTokenFunc: func(subject string) (string, error) { return "", wantErr },
	}

	u := NewAdminUsecase(creds, gen)
	_, err := u.Login(context.Background(), "admin", "rightpassword")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected token generation error, got %v", err)
	}
}
