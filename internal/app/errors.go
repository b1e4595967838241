package service

import "errors"

// Sentinel kinds returned by the service.
var (
	ErrNotStarted        = errors.New("service not started")
	ErrTooManySentences  = errors.New("too many sentences")
	ErrInvalidSentenceID = errors.New("invalid sentence id")
)
