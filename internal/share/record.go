// Package share implements the share-code lifecycle: issuing upload intents,
// confirming uploads and resolving codes to download URLs within the expiry window.
package share

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the fixed format of Record.CreatedAt.
const TimeLayout = time.RFC3339Nano

// Attribute names of a stored record.
const (
	AttrCode       = "fileCode"
	AttrStorageKey = "s3Key"
	AttrCreatedAt  = "createdAt"
)

// Record maps a share code to the uploaded object.
// CreatedAt is kept as text so a malformed stored value surfaces as ErrInvalidTimestamp.
type Record struct {
	Code       string `json:"fileCode"`
	StorageKey string `json:"s3Key"`
	CreatedAt  string `json:"createdAt"`
}

// StorageKeyFor derives the object key for a code and original file name.
func StorageKeyFor(code, fileName string) string {
	return code + "_" + fileName
}

// FormatTime renders t in the record timestamp format, always in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// CreatedTime parses CreatedAt strictly.
func (r *Record) CreatedTime() (time.Time, error) {
	if strings.TrimSpace(r.CreatedAt) == "" {
		return time.Time{}, fmt.Errorf("created_at is empty")
	}
	t, err := time.Parse(TimeLayout, r.CreatedAt)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// Attributes returns the record as a flat attribute map.
func (r *Record) Attributes() map[string]string {
	return map[string]string{
		AttrCode:       r.Code,
		AttrStorageKey: r.StorageKey,
		AttrCreatedAt:  r.CreatedAt,
	}
}

// recordFromAttributes is the inverse of Attributes. Missing fields stay empty.
func recordFromAttributes(attrs map[string]string) *Record {
	return &Record{
		Code:       attrs[AttrCode],
		StorageKey: attrs[AttrStorageKey],
		CreatedAt:  attrs[AttrCreatedAt],
	}
}

// Simplify projects scalar values (strings, numbers, booleans) into strings and
// drops everything else.
func Simplify(item map[string]any) map[string]string {
	out := make(map[string]string, len(item))
	for k, v := range item {
		switch t := v.(type) {
		case string:
			out[k] = t
		case bool:
			out[k] = strconv.FormatBool(t)
		case int:
			out[k] = strconv.Itoa(t)
		case int16:
			out[k] = strconv.FormatInt(int64(t), 10)
		case int32:
			out[k] = strconv.FormatInt(int64(t), 10)
		case int64:
			out[k] = strconv.FormatInt(t, 10)
		case float32:
			out[k] = strconv.FormatFloat(float64(t), 'f', -1, 32)
		case float64:
			out[k] = strconv.FormatFloat(t, 'f', -1, 64)
		}
	}
	return out
}
