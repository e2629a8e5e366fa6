//go:build js && wasm

package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/syumai/workers/cloudflare/kv"

	"github.com/dvcrn/hrms-api-client/internal/logger"
)

const (
	// DefaultKVNamespace is the binding name configured in wrangler.toml.
	DefaultKVNamespace = "hrms_session_kv"

	kvSessionKey = "hrms_session"
)

// KVStore implements Store using Cloudflare KV storage.
type KVStore struct {
	kvStore *kv.Namespace
}

// NewKVStore opens the KV namespace bound as namespace.
func NewKVStore(namespace string) (*KVStore, error) {
	if namespace == "" {
		namespace = DefaultKVNamespace
	}
	ns, err := kv.NewNamespace(namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize KV namespace: %w", err)
	}
	return &KVStore{kvStore: ns}, nil
}

func (k *KVStore) Token() (string, error) {
	raw, err := k.kvStore.GetString(kvSessionKey, nil)
	if err != nil {
		return "", fmt.Errorf("failed to get session from KV: %w", err)
	}
	if raw == "" {
		return "", nil
	}

	var s storedSession
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return "", fmt.Errorf("failed to parse session JSON: %w", err)
	}
	return s.AccessToken, nil
}

func (k *KVStore) SetToken(token string) error {
	raw, err := json.Marshal(storedSession{AccessToken: token, SavedAt: time.Now().Unix()})
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := k.kvStore.PutString(kvSessionKey, string(raw), nil); err != nil {
		return fmt.Errorf("failed to store session in KV: %w", err)
	}
	logger.Get().Info().Msg("Saved session to Cloudflare KV")
	return nil
}

func (k *KVStore) Clear() error {
	if err := k.kvStore.Delete(kvSessionKey); err != nil {
		return fmt.Errorf("failed to delete session from KV: %w", err)
	}
	return nil
}

func (k *KVStore) Name() string {
	return "KVStore"
}
