package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	ErrInvalidAddress     = errors.New("Invalid address")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidTxHash      = errors.New("invalid transaction hash")
	ErrUnknownEventTopic  = errors.New("unknown event topic")
	ErrValueOutOfRange    = errors.New("value out of range")
	ErrInvalidCacheConfig = errors.New("invalid cache config")
)
