package enum

type KVStoreType string

const (
	KVStoreTypeRedis  KVStoreType = "redis"
	KVStoreTypeBadger KVStoreType = "badger"
	KVStoreTypeConsul KVStoreType = "consul"
)
