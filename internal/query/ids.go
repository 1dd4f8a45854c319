package query

import (
	"fmt"
	"strconv"
)

// ParseID parses a numeric path identifier such as review_id or comment_id.
// Only base-10 integers are accepted.
func ParseID(raw string) (int, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return int(id), nil
}
