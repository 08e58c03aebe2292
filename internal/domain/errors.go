package domain

import "errors"

var (
	ErrIncompleteSelection = errors.New("selection incomplete")
	ErrQuotaExceeded       = errors.New("daily quota exceeded")
	ErrUnknownModel        = errors.New("unknown model")
	ErrUnknownDuration     = errors.New("unknown duration")
)
