package repository

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a document does not exist or an ID does not
// parse. Handlers translate it to a 404.
var ErrNotFound = errors.New("not found")

const (
	writeTimeout = 5 * time.Second
	readTimeout  = 3 * time.Second
	queryTimeout = 10 * time.Second
)
