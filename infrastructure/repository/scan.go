package repository

import (
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

type scanner interface {
	Scan(dest ...any) error
}

func parseStoredTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// wrapDBError anexa o código do postgres quando existir
func wrapDBError(err error, message string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return errors.Wrapf(err, "%s (code: %s)", message, pqErr.Code)
	}
	return errors.Wrap(err, message)
}
