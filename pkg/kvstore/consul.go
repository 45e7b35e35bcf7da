package kvstore

import (
	"context"
	"strings"

	"github.com/fystack/kv-gateway/pkg/common/enum"
	"github.com/hashicorp/consul/api"
)

// ConsulStore implements Store on Consul's KV API. Keys live under an
// optional folder so one cluster can host several gateways.
type ConsulStore struct {
	kv     *api.KV
	folder string
}

type ConsulOptions struct {
	Scheme   string
	Address  string
	Folder   string
	Token    string
	HttpAuth *api.HttpBasicAuth
}

func NewConsulStore(opts ConsulOptions) (*ConsulStore, error) {
	cfg := api.DefaultConfig()
	if opts.Scheme != "" {
		cfg.Scheme = opts.Scheme
	}
	if opts.Address != "" {
		cfg.Address = opts.Address
	}
	if opts.Token != "" {
		cfg.Token = opts.Token
	}
	if opts.HttpAuth != nil && opts.HttpAuth.Username != "" {
		cfg.HttpAuth = opts.HttpAuth
	}

	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &ConsulStore{kv: client.KV(), folder: opts.Folder}, nil
}

func (c *ConsulStore) GetName() string {
	return string(enum.KVStoreTypeConsul)
}

func (c *ConsulStore) fullKey(k string) (string, error) {
	if k == "" {
		return "", ErrKeyEmpty
	}
	if c.folder != "" {
		return c.folder + "/" + k, nil
	}
	return k, nil
}

func (c *ConsulStore) Set(ctx context.Context, key string, value string) error {
	k, err := c.fullKey(key)
	if err != nil {
		return err
	}

	pair := api.KVPair{Key: k, Value: []byte(value)}
	_, err = c.kv.Put(&pair, (&api.WriteOptions{}).WithContext(ctx))
	return err
}

func (c *ConsulStore) Get(ctx context.Context, key string) (string, error) {
	k, err := c.fullKey(key)
	if err != nil {
		return "", err
	}

	pair, _, err := c.kv.Get(k, (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return "", err
	}
	if pair == nil {
		return "", ErrKeyNotFound
	}
	return string(pair.Value), nil
}

func (c *ConsulStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	prefix := ""
	if c.folder != "" {
		prefix = c.folder + "/"
	}

	raw, _, err := c.kv.Keys(prefix, "", (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, err
	}

	keys := []string{}
	for _, k := range raw {
		key := strings.TrimPrefix(k, prefix)
		if matchKey(pattern, key) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (c *ConsulStore) Ping(ctx context.Context) error {
	// A keys listing on the folder doubles as a connectivity probe; Consul
	// has no dedicated ping on the KV endpoint.
	_, _, err := c.kv.Keys(c.folder, "", (&api.QueryOptions{}).WithContext(ctx))
	return err
}

func (c *ConsulStore) Close() error {
	return nil
}
