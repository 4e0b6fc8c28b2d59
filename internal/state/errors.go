package state

import "errors"

var (
	// ErrStateNotFound indicates the ledger file does not exist
	ErrStateNotFound = errors.New("state file not found")

	// ErrStateCorrupted indicates the ledger file contains invalid JSON
	ErrStateCorrupted = errors.New("state file is corrupted")

	// ErrVersionMismatch indicates an incompatible ledger schema version
	ErrVersionMismatch = errors.New("state version mismatch")
)
