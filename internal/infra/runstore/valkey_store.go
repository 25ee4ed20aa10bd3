package runstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/jpalima/habagat/internal/domain/forecast"
)

// ValkeyStore keeps the latest run summary in a Valkey-compatible database
// so dashboard replicas share one view of the most recent run.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "habagat"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// SaveLatest implements forecast.RunStore.
func (s *ValkeyStore) SaveLatest(ctx context.Context, summary forecast.RunSummary, ttl time.Duration) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.key()).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

// Latest implements forecast.RunStore.
func (s *ValkeyStore) Latest(ctx context.Context) (forecast.RunSummary, bool, error) {
	result := s.client.Do(ctx, s.client.B().Get().Key(s.key()).Build())
	payload, err := result.ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return forecast.RunSummary{}, false, nil
		}
		return forecast.RunSummary{}, false, err
	}
	var summary forecast.RunSummary
	if err := json.Unmarshal([]byte(payload), &summary); err != nil {
		return forecast.RunSummary{}, false, err
	}
	return summary, true, nil
}

func (s *ValkeyStore) key() string {
	return s.prefix + ":run:latest"
}

var _ forecast.RunStore = (*ValkeyStore)(nil)
