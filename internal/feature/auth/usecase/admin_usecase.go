// Package usecase は管理者認証のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials はユーザー名またはパスワードが一致しない場合に返されます。
var ErrInvalidCredentials = errors.New("invalid username or password")

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type JWTGenerator interface {
	// GenerateToken は指定されたサブジェクトの署名済みJWTトークンを生成します。
	GenerateToken(subject string) (string, error)
}

// Credentials は管理者アカウントの設定です。パスワードはbcryptハッシュで
// 保持し、平文は環境に置きません。
type Credentials struct {
	Username     string
	PasswordHash string
}

// adminUsecase は単一の管理者アカウントに対する認証を実装します。
// 収集の手動トリガーやトークン再発行などの管理APIを保護するためのもので、
// 一般ユーザーの登録機能は持ちません。
type adminUsecase struct {
	creds        Credentials
	jwtGenerator JWTGenerator
}

// NewAdminUsecase はadminUsecaseの新しいインスタンスを生成します。
func NewAdminUsecase(creds Credentials, jwtGenerator JWTGenerator) *adminUsecase {
	return &adminUsecase{
		creds:        creds,
		jwtGenerator: jwtGenerator,
	}
}

// Login は管理者を認証し、成功時にJWTトークンを返します。
// タイミング攻撃を防止するため、ユーザー名が一致しない場合でも
// bcrypt比較を実行します。
func (u *adminUsecase) Login(ctx context.Context, username, password string) (string, error) {
	// ユーザー名不一致時のタイミング攻撃緩和用ダミーハッシュ
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	usernameOK := username == u.creds.Username && u.creds.Username != ""
	if usernameOK {
		passwordHash = u.creds.PasswordHash
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if !usernameOK || compareErr != nil {
		return "", ErrInvalidCredentials
	}

	token, err := u.jwtGenerator.GenerateToken(username)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
