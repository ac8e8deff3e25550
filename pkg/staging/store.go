// Package staging copies bundled resources into the working cache.
//
// Bundled resources (the base archives) live in a read-only Store. Stage
// copies them byte-for-byte into the cache directory before a packaging
// run so the pipeline only ever works on files it owns.
package staging

import (
	"io"
	"os"

	"github.com/arthur-debert/subpack/pkg/errors"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// Store is a read-only source of named resources.
type Store interface {
	Open(name string) (io.ReadCloser, error)
	Exists(name string) bool
}

type billyStore struct {
	fs billy.Filesystem
}

// NewStore adapts a billy filesystem. Only read operations are used.
func NewStore(fs billy.Filesystem) Store {
	return &billyStore{fs: fs}
}

// NewDirStore serves resources from a directory on disk.
func NewDirStore(dir string) Store {
	return NewStore(osfs.New(dir))
}

func (s *billyStore) Open(name string) (io.ReadCloser, error) {
	f, err := s.fs.Open(name)
	if err != nil {
		code := errors.ErrStagingFailed
		if os.IsNotExist(err) {
			code = errors.ErrNotFound
		}
		return nil, errors.Wrapf(err, code, "cannot open resource %s", name).
			WithDetail("resource", name)
	}
	return f, nil
}

func (s *billyStore) Exists(name string) bool {
	info, err := s.fs.Stat(name)
	return err == nil && !info.IsDir()
}
