package entity

import "errors"

var (
	ErrIllegalTransition = errors.New("illegal ride status transition")
	ErrSlotUnavailable   = errors.New("slot not available")
	ErrEmailTaken        = errors.New("email already registered")
)
