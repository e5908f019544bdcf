package users

import (
	"context"

	"github.com/nikmy/userstore/internal/kv"
	"github.com/nikmy/userstore/internal/storage"
	"github.com/nikmy/userstore/pkg/errors"
	"github.com/nikmy/userstore/pkg/logger"
	"github.com/nikmy/userstore/pkg/validation"
)

const DefaultKey = "user-storage"

func New(ctx context.Context, log logger.Logger, backend kv.Backend, key string) (API, error) {
	if key == "" {
		key = DefaultKey
	}

	store, err := storage.Load[User](ctx, backend, key, log)
	if err != nil {
		return nil, errors.WrapFail(err, "load users")
	}

	return &repoAPI{store: store, log: log.With("users")}, nil
}

type repoAPI struct {
	store *storage.Store[User]
	log   logger.Logger
}

func (r *repoAPI) Get(id int64) (User, error) {
	user, err := r.store.Get(id)
	return user, errors.WrapFailf(err, "get user %d", id)
}

func (r *repoAPI) List() []User {
	return r.store.All()
}

// Add validates draft before an id is taken, so rejected drafts
// leave no gaps in the id sequence.
func (r *repoAPI) Add(ctx context.Context, draft Draft) (int64, error) {
	if invalid := Validate(draft); len(invalid) != 0 {
		return 0, &InvalidError{Fields: invalid}
	}

	id := r.store.NextID()
	err := r.store.Add(ctx, draft.user(), id)
	if err != nil {
		return 0, errors.WrapFail(err, "add user")
	}

	r.log.Infof("added user %d", id)
	return id, nil
}

func (r *repoAPI) Remove(ctx context.Context, id int64) error {
	err := r.store.Remove(ctx, id)
	if err != nil {
		return errors.WrapFailf(err, "remove user %d", id)
	}
	return nil
}

// Validate returns the message of every field that failed, keyed
// by the field's JSON name. An empty map means draft is valid.
func Validate(draft Draft) map[string]string {
	checks := [...]struct {
		field string
		msg   string
	}{
		{FieldName, validation.ValidateName(draft.Name)},
		{FieldDateOfBirth, validation.ValidateDateOfBirth(draft.DateOfBirth)},
		{FieldEmail, validation.ValidateEmail(draft.Email)},
		{FieldPhoneNumber, validation.ValidatePhoneNumber(draft.PhoneNumber)},
	}

	invalid := make(map[string]string)
	for _, c := range checks {
		if c.msg != "" {
			invalid[c.field] = c.msg
		}
	}
	return invalid
}
