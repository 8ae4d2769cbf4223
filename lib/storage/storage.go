package storage

type IterItem struct {
	N     uint64
	Key   []byte
	Value []byte
}
