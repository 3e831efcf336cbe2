package domain

import (
	"errors"
	"fmt"

	dErrors "accidentstats/pkg/domain-errors"
)

// ErrInvalidRange is returned when a range starts after it ends.
var ErrInvalidRange = errors.New("range start is after range end")

// Enumerate returns start..end inclusive in ascending order.
func Enumerate(start, end int) ([]int, error) {
	if start > end {
		return nil, dErrors.Wrap(ErrInvalidRange, dErrors.CodeInvalidRange,
			fmt.Sprintf("invalid range %d..%d", start, end))
	}
	out := make([]int, 0, end-start+1)
	for v := start; v <= end; v++ {
		out = append(out, v)
	}
	return out, nil
}
