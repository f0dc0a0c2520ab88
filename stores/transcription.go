package stores

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

const keyTranscription = "echo:transcription_enabled"

// TranscriptionStore holds the persisted transcriptions-on-or-off preference.
// Default is on. Loading stays true until the initial read completes so
// consumers can keep the toggle disabled instead of racing the load.
type TranscriptionStore struct {
	kv  KV
	log *zap.SugaredLogger

	mu      sync.Mutex
	enabled bool
	loading bool
}

// NewTranscriptionStore creates the store with transcriptions enabled.
func NewTranscriptionStore(kv KV, log *zap.SugaredLogger) *TranscriptionStore {
	return &TranscriptionStore{kv: kv, log: log, enabled: true, loading: true}
}

// Load reads the persisted preference. Any failure keeps the default.
func (s *TranscriptionStore) Load(ctx context.Context) {
	raw, ok, err := s.kv.Get(ctx, keyTranscription)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.log.Warnf("load transcription setting failed: %v", err)
		return
	}
	if !ok {
		return
	}
	var enabled bool
	if err := json.Unmarshal([]byte(raw), &enabled); err != nil {
		s.log.Warnf("malformed transcription setting, keeping default: %v", err)
		return
	}
	s.enabled = enabled
}

// Enabled reports the current preference.
func (s *TranscriptionStore) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Loading reports whether the initial load is still pending.
func (s *TranscriptionStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Toggle flips and persists the preference, returning the new value.
func (s *TranscriptionStore) Toggle() bool {
	s.mu.Lock()
	s.enabled = !s.enabled
	enabled := s.enabled
	s.mu.Unlock()

	b, _ := json.Marshal(enabled)
	if err := s.kv.Set(context.Background(), keyTranscription, string(b)); err != nil {
		s.log.Warnf("persist transcription setting failed: %v", err)
	}
	return enabled
}
