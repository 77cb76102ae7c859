// Package filestore persists Identity Records as a single JSON document keyed
// by username. Every mutation rewrites the whole file, which makes multi-field
// updates atomic for the caller at the cost of serializing writers.
package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-login-service/internal/errors"
	"github.com/jrsteele09/go-login-service/internal/metrics"
	"github.com/jrsteele09/go-login-service/users"
)

var _ users.Store = (*FileStore)(nil)

// FileStore is a users.Store backed by one JSON file.
//
// An unreadable or undecodable file loads as an empty collection instead of
// wedging the service. That self-healing policy silently discards whatever the
// damaged file held, so every recovery is logged and counted in the
// login_store_recoveries_total metric.
type FileStore struct {
	path string
	lock sync.RWMutex
}

// New creates a FileStore persisting to fileName inside dataFolder,
// creating the folder if needed.
func New(dataFolder, fileName string) (*FileStore, error) {
	if dataFolder == "" {
		return nil, errors.Wrapf(users.ErrStorage, "[filestore.New] data folder is required")
	}
	if fileName == "" {
		return nil, errors.Wrapf(users.ErrStorage, "[filestore.New] file name is required")
	}
	if err := os.MkdirAll(dataFolder, 0o755); err != nil {
		return nil, errors.Wrapf(users.ErrStorage, "[filestore.New] creating data folder %q (%v)", dataFolder, err)
	}
	return &FileStore{path: filepath.Join(dataFolder, fileName)}, nil
}

// Get returns the record for username, or users.ErrNotFound.
func (fs *FileStore) Get(username string) (*users.User, error) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()

	collection := fs.load()
	user, ok := collection[username]
	if !ok {
		return nil, users.ErrNotFound
	}
	return user.Clone(), nil
}

// Put creates or replaces the record for username and rewrites the file.
func (fs *FileStore) Put(username string, user *users.User) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	collection := fs.load()
	collection[username] = user.Clone()
	return fs.persist(collection)
}

// Exists reports whether a record exists for username.
func (fs *FileStore) Exists(username string) (bool, error) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()

	_, ok := fs.load()[username]
	return ok, nil
}

// Snapshot returns a copy of every record keyed by username.
func (fs *FileStore) Snapshot() (map[string]*users.User, error) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()

	collection := fs.load()
	snapshot := make(map[string]*users.User, len(collection))
	for username, user := range collection {
		snapshot[username] = user.Clone()
	}
	return snapshot, nil
}

// load reads the whole collection. A missing file is a normal first boot and
// yields an empty collection; an unreadable or undecodable file also yields an
// empty collection but raises the recovery diagnostic.
func (fs *FileStore) load() map[string]*users.User {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*users.User{}
		}
		fs.recover("unreadable", err)
		return map[string]*users.User{}
	}

	collection := map[string]*users.User{}
	if err := json.Unmarshal(data, &collection); err != nil {
		fs.recover("corrupt", err)
		return map[string]*users.User{}
	}
	return collection
}

func (fs *FileStore) recover(reason string, err error) {
	log.Warn().
		Err(err).
		Str("path", fs.path).
		Str("reason", reason).
		Msg("users file unreadable, continuing with an empty collection")
	metrics.RecordStoreRecovery(reason)
}

// persist rewrites the whole file. The temp-file-and-rename dance keeps a
// crashed write from leaving a half-written document behind.
func (fs *FileStore) persist(collection map[string]*users.User) error {
	data, err := json.MarshalIndent(collection, "", "    ")
	if err != nil {
		return errors.Wrapf(users.ErrStorage, "[FileStore.persist] encoding users file (%v)", err)
	}

	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrapf(users.ErrStorage, "[FileStore.persist] writing %q (%v)", tmp, err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return errors.Wrapf(users.ErrStorage, "[FileStore.persist] replacing %q (%v)", fs.path, err)
	}
	return nil
}
