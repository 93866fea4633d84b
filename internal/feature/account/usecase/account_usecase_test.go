package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/sujins0621/StockService/internal/feature/account/domain/entity"
)

type mockTokenSource struct {
	TokenFunc func(ctx context.Context) (string, error)
}

func (m *mockTokenSource) Token(ctx context.Context) (string, error) {
	if m.TokenFunc != nil {
		return m.TokenFunc(ctx)
	}
	return "tok", nil
}

type mockAccountSource struct {
	FetchAccountFunc func(ctx context.Context, token string) (*entity.AccountInfo, error)
}

func (m *mockAccountSource) FetchAccount(ctx context.Context, token string) (*entity.AccountInfo, error) {
	if m.FetchAccountFunc != nil {
		return m.FetchAccountFunc(ctx, token)
	}
	return &entity.AccountInfo{}, nil
}

type mockAccountRepository struct {
	ReplaceFunc func(ctx context.Context, info *entity.AccountInfo) error
	LatestFunc  func(ctx context.Context) (*entity.AccountInfo, error)

	replaced *entity.AccountInfo
}

func (m *mockAccountRepository) Replace(ctx context.Context, info *entity.AccountInfo) error {
	m.replaced = info
	if m.ReplaceFunc != nil {
		return m.ReplaceFunc(ctx, info)
	}
	return nil
}

func (m *mockAccountRepository) Latest(ctx context.Context) (*entity.AccountInfo, error) {
	if m.LatestFunc != nil {
		return m.LatestFunc(ctx)
	}
	return nil, nil
}

func TestRefresh_FetchesAndReplaces(t *testing.T) {
	fetched := &entity.AccountInfo{
		AccountName: "계좌",
		Holdings:    []entity.AccountHolding{{StockCode: "005930"}},
	}
	source := &mockAccountSource{
		FetchAccountFunc: func(ctx context.Context, token string) (*entity.AccountInfo, error) {
			if token != "tok" {
				t.Errorf("unexpected token: %s", token)
			}
			return fetched, nil
		},
	}
	repo := &mockAccountRepository{}

	au := NewAccountUsecase(&mockTokenSource{}, source, repo)
	got, err := au.Refresh(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != fetched {
		t.Error("refresh should return the fetched snapshot")
	}
	if repo.replaced != fetched {
		t.Error("fetched snapshot should be persisted via Replace")
	}
}

func TestRefresh_TokenFailure(t *testing.T) {
	wantErr := errors.New("auth down")
	tokens := &mockTokenSource{
		TokenFunc: func(ctx context.Context) (string, error) { return "", wantErr },
	}
	repo := &mockAccountRepository{}

	au := NewAccountUsecase(tokens, &mockAccountSource{}, repo)
	_, err := au.Refresh(context.Background())
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected token error, got %v", err)
	}
	if repo.replaced != nil {
		t.Error("nothing should be persisted when the token fails")
	}
}

func TestRefresh_FetchFailure(t *testing.T) {
	wantErr := errors.New("upstream down")
	source := &mockAccountSource{
		FetchAccountFunc: func(ctx context.Context, token string) (*entity.AccountInfo, error) {
			return nil, wantErr
		},
	}
	repo := &mockAccountRepository{}

	au := NewAccountUsecase(&mockTokenSource{}, source, repo)
	_, err := au.Refresh(context.Background())
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if repo.replaced != nil {
		t.Error("nothing should be persisted when the fetch fails")
	}
}

func TestLatest_Delegates(t *testing.T) {
	stored := &entity.AccountInfo{AccountName: "계좌"}
	repo := &mockAccountRepository{
		LatestFunc: func(ctx context.Context) (*entity.AccountInfo, error) {
			return stored, nil
		},
	}

	au := NewAccountUsecase(&mockTokenSource{}, &mockAccountSource{}, repo)
	got, err := au.Latest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != stored {
		t.Error("Latest should return the stored snapshot")
	}
}
