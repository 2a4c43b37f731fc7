package engine

import "errors"

// ErrPermissionDenied marks operations reserved for admin operators.
var ErrPermissionDenied = errors.New("permission denied")

// ErrNotReady is returned before the initial document load has finished.
var ErrNotReady = errors.New("document not loaded")
