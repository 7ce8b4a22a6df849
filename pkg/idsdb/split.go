package idsdb

import (
	"errors"
	"fmt"
	"strings"
)

const separator = "  "

// ErrNoSeparator is returned for content lines without the double space between ID and name.
var ErrNoSeparator = errors.New("missing id/name separator")

// RangeError reports an ID holding whitespace. The table format has no way to encode ID
// ranges, so it aborts the whole run.
type RangeError struct {
	ID   string
	Line int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("line %d: ranges are not supported: %s", e.Line, e.ID)
}

// SplitLine splits a trimmed content line at the first double space. The ID length is
// left for the caller to check.
func SplitLine(line string) (id, name string, err error) {
	idx := strings.Index(line, separator)
	if idx < 0 {
		return "", "", ErrNoSeparator
	}

	id, name = line[:idx], line[idx+len(separator):]
	if strings.ContainsAny(id, " \t") {
		return "", "", &RangeError{ID: id}
	}
	return id, name, nil
}
