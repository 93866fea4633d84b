package kiwoom

import (
	"strconv"
	"strings"
	"time"
)

// Kiwoomの数値フィールドは文字列で返され、符号プレフィックス（"+75000"）や
// 桁区切りカンマ（"1,234"）を含むことがあります。ここで一括して正規化します。
// 空文字や不正な値はゼロ値に落とす方針です。1フィールドの欠損でレコード全体を
// 捨てないための意図的な仕様であり、エラーは返しません。

// cleanNumber は符号プレフィックスと桁区切りを取り除きます。
func cleanNumber(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "+", "")
	s = strings.ReplaceAll(s, ",", "")
	return s
}

// ParseInt64 は上流の文字列エンコードされた整数フィールドをint64に変換します。
// 空・欠損・パース不能な入力は0を返します。
func ParseInt64(raw string) int64 {
	s := cleanNumber(raw)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// ParseFloat は上流の文字列エンコードされた小数フィールドをfloat64に変換します。
// 空・欠損・パース不能な入力は0.0を返します。
func ParseFloat(raw string) float64 {
	s := cleanNumber(raw)
	if s == "" {
		return 0.0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.0
	}
	return f
}

// TimeOfDay は"HHmmss"形式の時刻文字列とnowの暦日を組み合わせて完全な時刻を
// 再構成します。欠損または6文字でない場合はnowをそのまま返します。
//
// 暦日はペイロードではなくnowから取るため、日付境界をまたぐ収集では前日の
// レコードを当日に帰属させる可能性があります（運用上は市場時間内のみ収集）。
func TimeOfDay(raw string, now time.Time) time.Time {
	if len(raw) != 6 {
		return now
	}
	t, err := time.ParseInLocation("150405", raw, now.Location())
	if err != nil {
		return now
	}
	return time.Date(now.Year(), now.Month(), now.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, now.Location())
}

// DateYYYYMMDD は"yyyyMMdd"形式の日付文字列をパースします。
// 欠損または8文字でない、もしくはパース不能な場合はnowの日付を返します。
func DateYYYYMMDD(raw string, now time.Time) time.Time {
	if len(raw) != 8 {
		return dateOnly(now)
	}
	t, err := time.ParseInLocation("20060102", raw, now.Location())
	if err != nil {
		return dateOnly(now)
	}
	return t
}

// dateOnly は時刻成分を落とした日付を返します。
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
