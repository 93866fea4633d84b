package cache

import (
	"time"
)

// TimeUntilNextMarketOpen は次の寄り付き（韓国時間 09:00）までの期間を返します。
// 日足キャッシュのTTLとして使うと、翌営業日の寄り付きで自然に失効します。
func TimeUntilNextMarketOpen() time.Duration {
	loc, _ := time.LoadLocation("Asia/Seoul")
	now := time.Now().In(loc)

	nextOpen := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, loc)
	if now.After(nextOpen) {
		nextOpen = nextOpen.Add(24 * time.Hour)
	}

	return nextOpen.Sub(now)
}
