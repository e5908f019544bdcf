package users

import (
	"context"
)

type API interface {
	Get(id int64) (User, error)
	List() []User

	Add(ctx context.Context, draft Draft) (int64, error)
	Remove(ctx context.Context, id int64) error
}
