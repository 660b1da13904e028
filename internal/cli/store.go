package cli

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/quill/internal/adapters/file"
	"github.com/aretw0/quill/pkg/adapters/memory"
	"github.com/aretw0/quill/pkg/adapters/redis"
	"github.com/aretw0/quill/pkg/persistence/middleware"
	"github.com/aretw0/quill/pkg/ports"
	"github.com/aretw0/quill/pkg/session"
	backend "github.com/redis/go-redis/v9"
)

// Environment variables holding base64 AES-256 keys for sealed answer logs.
const (
	EnvEncryptionKey     = "QUILL_ENCRYPTION_KEY"
	EnvEncryptionOldKeys = "QUILL_ENCRYPTION_OLD_KEYS" // comma separated
)

// OpenSessions opens the configured store and returns a session manager over
// it, sealed when an encryption key is set. closeFn releases the store.
func OpenSessions(opts StoreOptions, logger *slog.Logger) (mgr *session.Manager, closeFn func() error, err error) {
	var store ports.LogStore
	mgrOpts := []session.Option{session.WithLogger(logger)}
	closeFn = func() error { return nil }

	switch opts.Kind {
	case "", "file":
		store = file.New(opts.Dir)
	case "memory":
		store = memory.NewStore()
	case "redis":
		url := opts.RedisURL
		if url == "" {
			url = "redis://localhost:6379/0"
		}
		ropts, err := backend.ParseURL(url)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid redis url: %w", err)
		}
		client := backend.NewClient(ropts)
		rs := redis.NewFromClient(client, redis.WithTTL(opts.TTL))
		store = rs
		mgrOpts = append(mgrOpts, session.WithLocker(redis.NewLocker(client, redis.DefaultPrefix)))
		closeFn = rs.Close
	default:
		return nil, nil, fmt.Errorf("unknown store %q (want file, redis or memory)", opts.Kind)
	}

	config, ok, err := encryptionFromEnv()
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	if ok {
		logger.Debug("answer logs are encrypted")
		store = middleware.Chain(store, middleware.NewEncryptionMiddleware(config))
	}

	return session.NewManager(store, mgrOpts...), closeFn, nil
}

func encryptionFromEnv() (middleware.EncryptionConfig, bool, error) {
	var config middleware.EncryptionConfig
	active := os.Getenv(EnvEncryptionKey)
	if active == "" {
		return config, false, nil
	}
	key, err := decodeKey(EnvEncryptionKey, active)
	if err != nil {
		return config, false, err
	}
	config.ActiveKey = key

	if old := os.Getenv(EnvEncryptionOldKeys); old != "" {
		for _, s := range strings.Split(old, ",") {
			key, err := decodeKey(EnvEncryptionOldKeys, strings.TrimSpace(s))
			if err != nil {
				return config, false, err
			}
			config.FallbackKeys = append(config.FallbackKeys, key)
		}
	}
	return config, true, nil
}

func decodeKey(name, s string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid base64: %w", name, err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("%s: key must be 32 bytes, got %d", name, len(key))
	}
	return key, nil
}
