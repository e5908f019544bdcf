package storage

import "github.com/nikmy/userstore/pkg/errors"

var (
	// ErrNotFound is returned when no item has the requested id.
	ErrNotFound = errors.New("storage: item not found")

	// ErrDuplicateID is returned by Add when the id is already taken.
	ErrDuplicateID = errors.New("storage: item with the same id already exists")

	// ErrIDOutOfRange is returned by Add for ids NextID could never
	// hand out.
	ErrIDOutOfRange = errors.New("storage: id out of range")

	// ErrDeserialization is returned by Load when the stored blob is
	// present but does not describe a valid store state.
	ErrDeserialization = errors.New("storage: malformed blob")
)
