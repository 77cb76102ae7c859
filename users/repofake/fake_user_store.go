package fakeuserstore

import (
	"sync"

	"github.com/jrsteele09/go-login-service/users"
)

var _ users.Store = (*FakeUserStore)(nil)

// FakeUserStore is an in-memory users.Store for tests. It can be primed to
// fail writes so callers can exercise the storage failure path.
type FakeUserStore struct {
	records map[string]*users.User
	lock    sync.RWMutex

	PutErr error // When set, Put returns this error instead of storing
}

func NewFakeUserStore() *FakeUserStore {
	return &FakeUserStore{
		records: make(map[string]*users.User),
	}
}

func (fs *FakeUserStore) Get(username string) (*users.User, error) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()

	user, ok := fs.records[username]
	if !ok {
		return nil, users.ErrNotFound
	}
	return user.Clone(), nil
}

func (fs *FakeUserStore) Put(username string, user *users.User) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if fs.PutErr != nil {
		return fs.PutErr
	}
	fs.records[username] = user.Clone()
	return nil
}

func (fs *FakeUserStore) Exists(username string) (bool, error) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()

	_, ok := fs.records[username]
	return ok, nil
}

func (fs *FakeUserStore) Snapshot() (map[string]*users.User, error) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()

	snapshot := make(map[string]*users.User, len(fs.records))
	for username, user := range fs.records {
		snapshot[username] = user.Clone()
	}
	return snapshot, nil
}
