package store

import "errors"

var (
	ErrInvalidPlan     = errors.New("plan document must contain 12 months")
	ErrInvalidProgress = errors.New("progress document has no start date")
)
