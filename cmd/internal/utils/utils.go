package utils

import (
	"reflect"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "03:04 PM"
)

func NowUTC() int64 {
	return time.Now().
		UTC().
		UnixMilli()
}

// ParseDate parses a calendar date in the wire format "2006-01-02".
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ParseClock parses a time-of-day in the wire format "03:04 PM".
func ParseClock(s string) (time.Time, error) {
	return time.Parse(ClockLayout, s)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}

// DatesBetween returns every date from first to last inclusive, in the
// wire format. first must not be after last.
func DatesBetween(first, last time.Time) []string {
	var dates []string
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		dates = append(dates, FormatDate(d))
	}
	return dates
}

func Sanitize(o any) {
	v := reflect.ValueOf(o)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		panic("sanitize: expected pointer to struct")
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		panic("sanitize: expected struct")
	}

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(sanitizeString(field.String()))

		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				for j := 0; j < field.Len(); j++ {
					field.Index(j).SetString(sanitizeString(field.Index(j).String()))
				}
			}
		}
	}
}

func sanitizeString(s string) string {
	return strings.TrimSpace(s)
}
