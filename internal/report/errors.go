package report

import "errors"

// ErrMonthOutOfRange is returned when a month number does not index the plan.
var ErrMonthOutOfRange = errors.New("month out of range")
