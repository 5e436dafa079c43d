package invoice

import "errors"

var (
	ErrSendTimeout = errors.New("invoice email send timed out")
	ErrNoRecipient = errors.New("order has no email address")
)
