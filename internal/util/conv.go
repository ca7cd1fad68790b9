package util

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// NewEntityID 生成实体ID：毫秒时间戳 + 随机后缀
// 唯一性按作用域保证（如 Week 内的元素ID），不做全局约束
func NewEntityID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.New().String()[:8])
}

// Slugify 由标题派生 URL-safe 的 slug
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case r == '-' || r == '_' || unicode.IsSpace(r):
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// SameCalendarDate 按日历日比较（忽略时分秒）
func SameCalendarDate(a, b time.Time) bool {
	return a.Format(DateFormat) == b.Format(DateFormat)
}

// TruncateToDate 截断到当日零点
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
