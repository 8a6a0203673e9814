package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
)

const (
	dateLayout   = "2006-01-02"
	clockLayout  = "15:04"
	legacyLayout = "02/01/2006"
	humanLayout  = "02 Jan 2006 15:04"
)

func FormatEpoch(millis int64) string {
	return time.UnixMilli(millis).
		UTC().
		Format(time.RFC3339)
}

func NowUTC() int64 {
	return time.Now().
		UTC().
		UnixMilli()
}

func FromEpoch(rfc string) (int64, error) {
	t, err := time.Parse(time.RFC3339, rfc)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

// FormatHuman renders an epoch-millis timestamp the way it appears in
// notification bodies, in local time.
func FormatHuman(millis int64) string {
	return time.UnixMilli(millis).Local().Format(humanLayout)
}

// CombineDateTime merges a "YYYY-MM-DD" date and a "HH:MM" clock into a
// single epoch-millis timestamp in local time.
func CombineDateTime(date, clock string) (int64, error) {
	t, err := time.ParseInLocation(dateLayout+" "+clockLayout, date+" "+clock, time.Local)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

// ParseBirthDate accepts either "DD/MM/YYYY" or "YYYY-MM-DD" and normalizes
// to the ISO form used in storage.
func ParseBirthDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(legacyLayout, s); err == nil {
		return t.Format(dateLayout), nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t.Format(dateLayout), nil
	}
	return "", errors.New("expected DD/MM/YYYY or YYYY-MM-DD")
}

// FormatDuration renders minutes as "2h", "45m" or "1h 30m".
func FormatDuration(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}

// NormalizeEmail lower-cases an address and applies the only syntactic rule
// the system enforces: it must contain "@".
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return "", errors.New("email must contain @")
	}
	return email, nil
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
