// Package handler はプラットフォーム共通のHTTPハンドラーを提供します。
package handler

import "github.com/gin-gonic/gin"

// Health は死活監視用の /healthz エンドポイントを処理します。
// プロセスが応答できることだけを確認し、収集サイクルやDBの状態には踏み込みません。
func Health(c *gin.Context) {
	// 監視系にキャッシュさせない
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case "HEAD":
		c.Status(200)
	case "OPTIONS":
		c.Status(204)
	default:
		c.JSON(200, gin.H{"status": "ok"})
	}
}
