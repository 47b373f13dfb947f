package domain

import "errors"

var (
	ErrRecordNotFound     = errors.New("record not found")
	ErrSeatTaken          = errors.New("seat is already taken")
	ErrInvalidSeat        = errors.New("seat number is out of range for this session")
	ErrSessionNotBookable = errors.New("session does not exist or is not open for booking")
	ErrInvalidTransition  = errors.New("ticket status does not permit this operation")
	ErrOutsideUseWindow   = errors.New("ticket cannot be used outside the session's use window")
	ErrBusy               = errors.New("session is busy, retry the operation")
)
