package kv

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikmy/userstore/pkg/errors"
	"github.com/nikmy/userstore/pkg/logger"
)

const fileExt = ".json"

func newFile(dir string, log logger.Logger) (*fileBackend, error) {
	if dir == "" {
		return nil, errors.Fail("use empty directory for file storage")
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.WrapFailf(err, "resolve path %s", dir)
	}

	err = os.MkdirAll(abs, 0o755)
	if err != nil {
		return nil, errors.WrapFailf(err, "create directory %s", abs)
	}

	return &fileBackend{dir: abs, log: log.With("file_backend")}, nil
}

// fileBackend stores every key in its own file under dir.
type fileBackend struct {
	dir string
	log logger.Logger
}

func (f *fileBackend) Read(_ context.Context, key string) ([]byte, error) {
	path, err := f.path(key)
	if err != nil {
		return nil, err
	}

	f.log.Debugf("reading %s", path)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, errors.WrapFailf(err, "read %s", path)
	}
	return data, nil
}

// Write goes through a temp file in the same directory and a
// rename, so readers never see a half-written value.
func (f *fileBackend) Write(_ context.Context, key string, value []byte) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}

	f.log.Debugf("writing %d bytes to %s", len(value), path)
	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return errors.WrapFail(err, "create temp file")
	}

	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	_, err = tmp.Write(value)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return errors.WrapFailf(err, "write %s", tmpName)
	}

	err = os.Rename(tmpName, path)
	if err != nil {
		return errors.WrapFailf(err, "replace %s", path)
	}
	return nil
}

func (f *fileBackend) Close(context.Context) error {
	return nil
}

func (f *fileBackend) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", errors.Wrapf(ErrInvalidKey, "key %q", key)
	}
	return filepath.Join(f.dir, key+fileExt), nil
}
