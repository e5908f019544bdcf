package storage

// Entity is a record with a unique integer id. WithID returns a
// copy of the record carrying the given id.
type Entity[T any] interface {
	GetID() int64
	WithID(id int64) T
}
