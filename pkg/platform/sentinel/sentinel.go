package sentinel

import "errors"

// Sentinel errors for storage facts. Stores return these (optionally wrapped) so
// services can translate them into domain errors.
//
// - ErrNotFound: the row, or a row it references, does not exist
// - ErrConflict: a uniqueness constraint rejected the write
// - ErrExpired: the row is past its expiry
// - ErrInvalidState: a conditional update matched no row in the expected state
// - ErrUnavailable: the backing store is temporarily unreachable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrExpired      = errors.New("expired")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
