package utils

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrInvalidDateFormat  = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidMonthFormat = errors.New("invalid month, expected YYYY-MM")
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// 日期接受 "-" 或 "/" 分隔，月和日可以不补零
var (
	dateLayouts  = []string{"2006-01-02", "2006-1-2", "2006-01-2", "2006-1-02"}
	monthLayouts = []string{"2006-01", "2006-1"}
)

// IsNumeric 是否只包含 ASCII 数字，空字符串返回 false
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ValidateEmailFormat 校验邮箱格式。空字符串不做校验，是否必填由调用方决定
func ValidateEmailFormat(email string) bool {
	trimmed := strings.TrimSpace(email)
	return trimmed == "" || emailPattern.MatchString(trimmed)
}

func parseWithLayouts(raw string, layouts []string, invalid error) (time.Time, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), "/", "-")
	if normalized == "" {
		return time.Time{}, invalid
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, normalized); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, invalid
}

// ParseDate 解析 YYYY-MM-DD 及其变体 (YYYY/M/D 等)，结果为 UTC 零点
func ParseDate(dateStr string) (time.Time, error) {
	return parseWithLayouts(dateStr, dateLayouts, ErrInvalidDateFormat)
}

// ParseMonth 解析 YYYY-MM 或 YYYY-M，返回该月第一天 (UTC)
func ParseMonth(monthStr string) (time.Time, error) {
	return parseWithLayouts(monthStr, monthLayouts, ErrInvalidMonthFormat)
}
