package storage

import (
	"encoding/json"

	"github.com/syndtr/goleveldb/leveldb"
	leveldbStorage "github.com/syndtr/goleveldb/leveldb/storage"
	leveldbUtil "github.com/syndtr/goleveldb/leveldb/util"

	"boscoin.io/tokenvote/lib/common"
	"boscoin.io/tokenvote/lib/errors"
)

type LevelDBBackend struct {
	DB *leveldb.DB
}

func setLevelDBCoreError(err error) error {
	if err == nil {
		return nil
	}

	return errors.StorageCoreError.Wrap(err)
}

func NewLevelDBBackend(config *Config) (*LevelDBBackend, error) {
	st := &LevelDBBackend{}
	if err := st.Init(config); err != nil {
		return nil, err
	}

	return st, nil
}

func NewTestMemoryLevelDBBackend() (*LevelDBBackend, error) {
	return NewLevelDBBackend(&Config{Scheme: "memory"})
}

func (st *LevelDBBackend) Init(config *Config) (err error) {
	var db *leveldb.DB

	switch config.Scheme {
	case "file":
		if db, err = leveldb.OpenFile(config.Path, nil); err != nil {
			return setLevelDBCoreError(err)
		}
	case "memory":
		if db, err = leveldb.Open(leveldbStorage.NewMemStorage(), nil); err != nil {
			return setLevelDBCoreError(err)
		}
	default:
		return errors.UnknownStorageScheme.Clone().SetData("scheme", config.Scheme)
	}

	st.DB = db

	return
}

func (st *LevelDBBackend) Close() error {
	if st.DB == nil {
		return nil
	}

	return st.DB.Close()
}

func (st *LevelDBBackend) Has(k string) (bool, error) {
	ok, err := st.DB.Has([]byte(k), nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return false, nil
		}
		return false, setLevelDBCoreError(err)
	}

	return ok, nil
}

func (st *LevelDBBackend) GetRaw(k string) (b []byte, err error) {
	b, err = st.DB.Get([]byte(k), nil)
	if err == leveldb.ErrNotFound {
		return nil, errors.StorageRecordDoesNotExist.Clone().SetData("key", k)
	}

	return b, setLevelDBCoreError(err)
}

func (st *LevelDBBackend) Get(k string, i interface{}) (err error) {
	var b []byte
	if b, err = st.GetRaw(k); err != nil {
		return
	}

	return setLevelDBCoreError(json.Unmarshal(b, i))
}

// New stores v under k; an existing key is errors.StorageRecordAlreadyExists.
func (st *LevelDBBackend) New(k string, v interface{}) (err error) {
	var encoded []byte
	if encoded, err = common.EncodeJSONValue(v); err != nil {
		return setLevelDBCoreError(err)
	}

	var exists bool
	if exists, err = st.Has(k); err != nil {
		return
	} else if exists {
		return errors.StorageRecordAlreadyExists.Clone().SetData("key", k)
	}

	return setLevelDBCoreError(st.DB.Put([]byte(k), encoded, nil))
}

type (
	WalkFunc   func(item IterItem) (bool, error)
	WalkOption struct {
		Limit   uint64
		Reverse bool
	}
)

func NewWalkOption(limit uint64, reverse bool) *WalkOption {
	return &WalkOption{
		Limit:   limit,
		Reverse: reverse,
	}
}

// Walk visits the records under prefix in key order until walkFunc returns
// false or the limit is reached. A zero limit visits everything.
func (st *LevelDBBackend) Walk(prefix string, option *WalkOption, walkFunc WalkFunc) error {
	if option == nil {
		option = &WalkOption{}
	}

	iter := st.DB.NewIterator(leveldbUtil.BytesPrefix([]byte(prefix)), nil)
	defer iter.Release()

	var first, next func() bool
	if option.Reverse {
		first, next = iter.Last, iter.Prev
	} else {
		first, next = iter.First, iter.Next
	}

	var n uint64
	for ok := first(); ok; ok = next() {
		if option.Limit > 0 && n >= option.Limit {
			break
		}
		n++

		item := IterItem{
			N:     n,
			Key:   append([]byte(nil), iter.Key()...),
			Value: append([]byte(nil), iter.Value()...),
		}
		if more, err := walkFunc(item); err != nil {
			return err
		} else if !more {
			break
		}
	}

	return setLevelDBCoreError(iter.Error())
}
