package config

import (
	"fmt"
	"time"

	"github.com/fystack/kv-gateway/pkg/common/constant"
	"github.com/fystack/kv-gateway/pkg/common/enum"
)

type Config struct {
	Environment string       `yaml:"environment" validate:"required,oneof=production development"`
	Server      ServerConfig `yaml:"server"`
	KVStore     KVSConfig    `yaml:"kvstore" validate:"required"`
	NATS        NatsConfig   `yaml:"nats"`
	ServiceName string       `yaml:"service_name" validate:"required"`
}

type ServerConfig struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required,min=1,max=65535"`

	// RequestTimeout bounds every store call made on behalf of a request.
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"required"`
}

type KVSConfig struct {
	Type   enum.KVStoreType `yaml:"type" validate:"required,oneof=redis badger consul"`
	Redis  RedisConfig      `yaml:"redis"`
	Badger BadgerConfig     `yaml:"badger"`
	Consul ConsulConfig     `yaml:"consul"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	MTLS     bool   `yaml:"mtls"`

	TLS TLSConfig `yaml:"tls"`
}

type TLSConfig struct {
	ClientCert string `yaml:"client_cert"`
	ClientKey  string `yaml:"client_key"`
	CACert     string `yaml:"ca_cert"`
}

type BadgerConfig struct {
	Directory string `yaml:"directory"`
	Prefix    string `yaml:"prefix"`
}

type ConsulConfig struct {
	Scheme   string      `yaml:"scheme"`
	Address  string      `yaml:"address"`
	Folder   string      `yaml:"folder"`
	Token    string      `yaml:"token"`
	HttpAuth HttpAuthCfg `yaml:"http_auth"`
}

type HttpAuthCfg struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type NatsConfig struct {
	// URL left empty disables key event emission entirely.
	URL           string    `yaml:"url"`
	SubjectPrefix string    `yaml:"subject_prefix"`
	Username      string    `yaml:"username"`
	Password      string    `yaml:"password"`
	TLS           TLSConfig `yaml:"tls"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Default returns the configuration used when no config file is present.
// It mirrors the legacy deployment: Redis on localhost:6379, HTTP on
// 0.0.0.0:5000.
func Default() Config {
	return Config{
		Environment: constant.EnvDevelopment,
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           5000,
			RequestTimeout: 3 * time.Second,
		},
		KVStore: KVSConfig{
			Type: enum.KVStoreTypeRedis,
			Redis: RedisConfig{
				Host: constant.DefaultRedisHost,
				Port: constant.DefaultRedisPort,
			},
			Badger: BadgerConfig{
				Directory: "./data/badger",
			},
			Consul: ConsulConfig{
				Scheme:  "http",
				Address: "localhost:8500",
				Folder:  "kv-gateway",
			},
		},
		NATS: NatsConfig{
			SubjectPrefix: "kvgw",
		},
		ServiceName: constant.LegacyServiceName,
	}
}
