package pathutil

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ExtractID parses the positive integer that follows prefix in path.
//
//	id, err := ExtractID("/quotes/123", "/quotes/")
//	// 123, nil
func ExtractID(path, prefix string) (int64, error) {
	idStr := strings.TrimSuffix(strings.TrimPrefix(path, prefix), "/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
