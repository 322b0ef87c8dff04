package store

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

var ErrDataDirBusy = errors.New("data dir is in use by another jobfilter process")

// LockDataDir takes the exclusive writer lock for dataDir. Preferences and
// the credential assume one writer; a second engine or a mutating CLI
// command run against the same dir gets ErrDataDirBusy.
func LockDataDir(dataDir string) (*flock.Flock, error) {
	fl := flock.New(filepath.Join(dataDir, "jobfilter.lock"))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock data dir: %w", err)
	}
	if !ok {
		return nil, ErrDataDirBusy
	}
	return fl, nil
}
