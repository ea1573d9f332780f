package http

import (
	"net/http"
	"strconv"
	"time"

	"hotelbooker/pkg/config"
	apperrors "hotelbooker/pkg/errors"
)

func ExtractLimitOffset(r *http.Request) (int, int64, error) {
	query := r.URL.Query()

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}

	var offset int64 = 0
	if s := query.Get("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + s)
		}
		offset = int64(v)
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	return limit, offset, nil
}

// ExtractDate parses a YYYY-MM-DD query parameter into a UTC-midnight
// calendar date. Returns the zero time when the parameter is absent.
func ExtractDate(r *http.Request, param string) (time.Time, error) {
	s := r.URL.Query().Get(param)
	if s == "" {
		return time.Time{}, nil
	}

	d, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		return time.Time{}, apperrors.InvalidInput("invalid " + param + " parameter, must be YYYY-MM-DD: " + s)
	}
	return d, nil
}

// ParseDateValue parses a required YYYY-MM-DD value from a request body
// field, naming the field in the error.
func ParseDateValue(s, field string) (time.Time, error) {
	if s == "" {
		return time.Time{}, apperrors.InvalidInput(field + " is required")
	}
	d, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		return time.Time{}, apperrors.InvalidInput("invalid " + field + ", must be YYYY-MM-DD: " + s)
	}
	return d, nil
}

func InvalidQuery(param, value string) error {
	return apperrors.InvalidInput("invalid " + param + " parameter: " + value)
}
