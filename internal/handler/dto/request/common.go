package request

import (
	"strings"
	"time"

	"commons-dinner/internal/pkg/errs"
	"commons-dinner/internal/pkg/patch"
)

const DateLayout = time.DateOnly

// ParseDate reads a calendar date (YYYY-MM-DD)
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, errs.Mark(errs.Wrapf(err, "invalid date %q", s), errs.ErrDomainValidation)
	}
	return t, nil
}

type DateRange struct {
	Start string `json:"start" binding:"required,datetime=2006-01-02"`
	End   string `json:"end" binding:"required,datetime=2006-01-02"`
}

// OptionalText maps a missing or blank optional field to nil
func OptionalText(s *string) *string {
	return patch.NilIfZero(strings.TrimSpace(patch.Coalesce(s, "")))
}
