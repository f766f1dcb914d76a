package models

import "errors"

// Domain specific errors for remote content sources.
var (
	ErrNotFound         = errors.New("requested item not found")
	ErrBadRequest       = errors.New("bad request")
	ErrUpstream         = errors.New("upstream service failed")
	ErrContentNotConfig = errors.New("content source not configured")
)
