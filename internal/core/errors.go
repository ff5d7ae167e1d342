package core

import (
	"errors"

	"github.com/cse-connect/connect-backend/internal/db"
)

var (
	// ErrNotFound is shared with the storage layer so wrapped repository
	// errors match it directly.
	ErrNotFound = db.ErrNotFound

	ErrUnauthenticated  = errors.New("sign-in required")
	ErrPermissionDenied = errors.New("access not granted")
	ErrForbidden        = errors.New("only the author can change this item")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrRateLimited      = errors.New("too many requests")
)
