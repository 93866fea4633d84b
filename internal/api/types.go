// Package api は全ハンドラー共通のリクエスト/レスポンス型を定義します。
package api

// LoginRequest は管理者ログインのリクエストボディです。
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse はログイン成功時のレスポンスです。
type TokenResponse struct {
	Token string `json:"token"`
}

// MessageResponse は汎用の成功レスポンスです。
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse は汎用のエラーレスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}
