package utils

import "time"

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	time.DateOnly,
}

// ParseDateTime interpreta uma data ou data/hora no fuso informado
func ParseDateTime(value string, loc *time.Location) (*time.Time, error) {
	var lastErr error
	for _, layout := range dateTimeLayouts {
		parsed, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return &parsed, nil
		}
		lastErr = err
	}

	return nil, lastErr
}
