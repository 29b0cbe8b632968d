package jobcache

import (
	"errors"
	"fmt"
)

// Construction errors. Together with errMinExceedsMax below, these are the
// only errors JobCache ever returns, all of them from New; every other
// operation is total.
var (
	ErrMaxSizeTooSmall = errors.New("maximum_size for a JobCache must be greater than zero!")
	ErrMinSizeNegative = errors.New("minimum_size for a JobCache must be at least zero!")
)

// errMinExceedsMax reports minimum_size > maximum_size with both values in
// the message, matching the reference error text exactly.
func errMinExceedsMax(minimumSize, maximumSize int) error {
	return fmt.Errorf("minimum queue size (%d) is greater than the maximum queue size (%d)!", minimumSize, maximumSize)
}
