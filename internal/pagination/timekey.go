package pagination

import "time"

// TimeKey formats a timestamp for use as a cursor ordering key. RFC3339Nano
// keeps full precision so two rows created in the same second still order
// deterministically together with the ID tie breaker.
func TimeKey(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTimeKey decodes a TimeKey back into a timestamp. A malformed key means
// the cursor was tampered with or truncated, so it maps to ErrInvalidCursor.
func ParseTimeKey(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, ErrInvalidCursor
	}
	return t, nil
}
