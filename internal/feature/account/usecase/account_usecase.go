// Package usecase は口座評価スナップショットの更新と照会を実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sujins0621/StockService/internal/feature/account/domain/entity"
)

// TokenSource はBearerトークンの取得を抽象化します。
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// AccountSource は上流APIからの口座評価取得を抽象化します。
type AccountSource interface {
	FetchAccount(ctx context.Context, token string) (*entity.AccountInfo, error)
}

// AccountRepository は口座スナップショットの永続化層を抽象化します。
type AccountRepository interface {
	// Replace は既存のスナップショットを削除して新しいものを保存します。
	// 常に最新の1件だけが残ります。
	Replace(ctx context.Context, info *entity.AccountInfo) error
	// Latest は保存済みのスナップショットを返します。なければnilを返します。
	Latest(ctx context.Context) (*entity.AccountInfo, error)
}

// AccountUsecase は口座評価の更新と照会をまとめます。
type AccountUsecase struct {
	tokens  TokenSource
	source  AccountSource
	account AccountRepository
}

// NewAccountUsecase はAccountUsecaseの新しいインスタンスを生成します。
func NewAccountUsecase(tokens TokenSource, source AccountSource, account AccountRepository) *AccountUsecase {
	return &AccountUsecase{tokens: tokens, source: source, account: account}
}

// Refresh は上流から口座評価を取得し、スナップショットを差し替えます。
func (au *AccountUsecase) Refresh(ctx context.Context) (*entity.AccountInfo, error) {
	token, err := au.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire token: %w", err)
	}

	info, err := au.source.FetchAccount(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("fetch account: %w", err)
	}

	if err := au.account.Replace(ctx, info); err != nil {
		return nil, fmt.Errorf("save account: %w", err)
	}

	slog.Info("refreshed account snapshot",
		"account", info.AccountName, "holdings", len(info.Holdings))
	return info, nil
}

// Latest は保存済みの口座評価スナップショットを返します。
func (au *AccountUsecase) Latest(ctx context.Context) (*entity.AccountInfo, error) {
	return au.account.Latest(ctx)
}
