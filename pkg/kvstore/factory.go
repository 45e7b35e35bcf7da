package kvstore

import (
	"fmt"

	"github.com/fystack/kv-gateway/pkg/common/config"
	"github.com/fystack/kv-gateway/pkg/common/enum"
	"github.com/fystack/kv-gateway/pkg/infra"
	"github.com/hashicorp/consul/api"
)

// NewFromConfig constructs the configured Store backend.
func NewFromConfig(cfg config.KVSConfig, environment string) (Store, error) {
	switch cfg.Type {
	case enum.KVStoreTypeRedis:
		client, err := infra.NewRedisClient(cfg.Redis, environment)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client), nil
	case enum.KVStoreTypeBadger:
		return NewBadgerStore(cfg.Badger.Directory, cfg.Badger.Prefix)
	case enum.KVStoreTypeConsul:
		return NewConsulStore(ConsulOptions{
			Scheme:  cfg.Consul.Scheme,
			Address: cfg.Consul.Address,
			Folder:  cfg.Consul.Folder,
			Token:   cfg.Consul.Token,
			HttpAuth: &api.HttpBasicAuth{
				Username: cfg.Consul.HttpAuth.Username,
				Password: cfg.Consul.HttpAuth.Password,
			},
		})
	default:
		return nil, fmt.Errorf("unsupported kvstore type: %s", cfg.Type)
	}
}
