package infra

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/fystack/kv-gateway/pkg/common/config"
	"github.com/fystack/kv-gateway/pkg/common/constant"
	"github.com/fystack/kv-gateway/pkg/common/logger"
	"github.com/fystack/kv-gateway/pkg/retry"
	"github.com/redis/go-redis/v9"
)

func getTlsConfig(caCertPath string, clientCertPath string, clientKeyPath string) (*tls.Config, error) {
	caCert, err := os.ReadFile(caCertPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA cert: %w", err)
	}

	caCertPool := x509.NewCertPool()
	if !caCertPool.AppendCertsFromPEM(caCert) {
		return nil, fmt.Errorf("failed to append CA cert to pool")
	}

	cert, err := tls.LoadX509KeyPair(clientCertPath, clientKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load client certificate: %w", err)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      caCertPool,
	}, nil
}

// NewRedisClient builds a pooled go-redis client from configuration and
// verifies connectivity before returning. The initial ping is retried so a
// gateway starting alongside its store does not flap.
func NewRedisClient(cfg config.RedisConfig, environment string) (*redis.Client, error) {
	// Pool sized off CPU count; the gateway is pure request/response so a
	// handful of idle connections per CPU is plenty.
	cpus := runtime.GOMAXPROCS(0)

	opts := &redis.Options{
		Addr:            cfg.Addr(),
		Password:        cfg.Password,
		DB:              0,
		PoolSize:        cpus * 10,
		MinIdleConns:    cpus * 2,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
	}

	if environment == constant.EnvProduction && cfg.MTLS {
		tlsCfg, err := getTlsConfig(cfg.TLS.CACert, cfg.TLS.ClientCert, cfg.TLS.ClientKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config for redis client: %w", err)
		}
		opts.TLSConfig = tlsCfg
	}

	client := redis.NewClient(opts)

	err := retry.Exponential(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		pong, err := client.Ping(ctx).Result()
		if err != nil {
			return err
		}
		logger.Info("Connected to Redis", "addr", cfg.Addr(), "pong", pong)
		return nil
	}, retry.ExponentialConfig{
		InitialInterval: 500 * time.Millisecond,
		MaxElapsedTime:  15 * time.Second,
		OnRetry: func(err error, next time.Duration) {
			logger.Warn("Redis ping failed, retrying", "addr", cfg.Addr(), "next", next, "err", err)
		},
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}
