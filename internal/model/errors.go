package model

import "errors"

var (
	ErrEmptyQuery      = errors.New("empty search query")
	ErrUnknownRegion   = errors.New("unknown grid region")
	ErrCardNotFound    = errors.New("card not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidCriteria = errors.New("invalid filter or sort criterion")
)
