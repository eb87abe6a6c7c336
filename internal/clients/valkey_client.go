package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"
)

// ValkeyClient caches upstream feed payloads so repeated category requests
// inside the TTL do not hammer the publishers. Article records themselves
// stay request-scoped; only raw fetch payloads are cached.
type ValkeyClient struct {
	Client valkey.Client
}

// NewValkeyClient connects using VALKEY_INIT_ADDRESS, VALKEY_PASSWORD and
// VALKEY_TLS. Callers treat the cache as optional and should skip
// construction when the address is unset.
func NewValkeyClient() (*ValkeyClient, error) {
	opts := valkey.ClientOption{
		InitAddress:      []string{os.Getenv("VALKEY_INIT_ADDRESS")},
		Password:         os.Getenv("VALKEY_PASSWORD"),
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if os.Getenv("VALKEY_TLS") == "true" {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping: %w", err)
	}

	slog.Info("[ValkeyClient] Successfully connected to valkey")
	return &ValkeyClient{Client: client}, nil
}

func (vc *ValkeyClient) Close() {
	if vc != nil && vc.Client != nil {
		vc.Client.Close()
	}
}

// GetCachedPayload returns the cached bytes for key, with ok=false on miss
// or any cache error. Cache trouble never fails a fetch.
func (vc *ValkeyClient) GetCachedPayload(ctx context.Context, key string) ([]byte, bool) {
	if vc == nil {
		return nil, false
	}
	res := vc.doWithRetry(ctx, vc.Client.B().Get().Key(key).Build(), 3)
	if err := res.Error(); err != nil {
		if !valkey.IsValkeyNil(err) {
			slog.Warn("[ValkeyClient] Cache read failed",
				slog.String("key", key),
				slog.String("error", err.Error()))
		}
		return nil, false
	}
	payload, err := res.AsBytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

// CachePayload stores bytes under key with a TTL in seconds.
func (vc *ValkeyClient) CachePayload(ctx context.Context, key string, payload []byte, ttlSeconds int64) error {
	if vc == nil {
		return nil
	}
	cmd := vc.Client.B().Set().Key(key).Value(string(payload)).ExSeconds(ttlSeconds).Build()
	if err := vc.doWithRetry(ctx, cmd, 3).Error(); err != nil {
		return fmt.Errorf("[ValkeyClient] cache write failed: %w", err)
	}
	return nil
}

func (vc *ValkeyClient) doWithRetry(ctx context.Context, completed valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		result = vc.Client.Do(ctx, completed)
		err := result.Error()
		if err == nil || valkey.IsValkeyNil(err) || !isConnectionError(err) {
			break
		}
		slog.Warn("[ValkeyClient] Command failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		time.Sleep(250 * time.Millisecond)
	}
	return result
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
