// Package directory exposes the read-only list of counterparties the
// user can open a one-to-one thread with.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ostazi/chat-core/internal/model"
	"github.com/ostazi/chat-core/internal/store"
	"github.com/ostazi/chat-core/pkg/logger"
)

// Directory serves counterparty entries. Entries are static for the
// lifetime of the process: either the seed list or one prefetch from the
// marketplace backend at startup. Unread counts are read through from
// the counter store at list time; they are presentation hints only.
type Directory struct {
	counters store.CounterStore
	logger   *logger.Logger

	mu      sync.RWMutex
	entries []model.Counterparty
}

// New creates a directory serving the given entries.
func New(entries []model.Counterparty, counters store.CounterStore, log *logger.Logger) *Directory {
	return &Directory{
		counters: counters,
		logger:   log,
		entries:  entries,
	}
}

// Prefetch replaces the entries with the backend's list. Any failure
// leaves the current entries in place.
func (d *Directory) Prefetch(ctx context.Context, baseURL string, client *http.Client) error {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/counterparties", nil)
	if err != nil {
		return fmt.Errorf("failed to build directory request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("directory fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("directory fetch returned status %d", resp.StatusCode)
	}

	var entries []model.Counterparty
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return fmt.Errorf("failed to decode directory response: %w", err)
	}

	d.mu.Lock()
	d.entries = entries
	d.mu.Unlock()

	d.logger.Info("counterparty directory prefetched", zap.Int("count", len(entries)))
	return nil
}

// List returns all counterparties with current unread counts filled in.
func (d *Directory) List(ctx context.Context) []model.Counterparty {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]model.Counterparty, len(d.entries))
	for i, entry := range d.entries {
		entry.UnreadCount = d.counters.Get(model.ChannelKey{
			Kind:           model.ChannelCounterparty,
			CounterpartyID: entry.ID,
		}.String())
		out[i] = entry
	}
	return out
}

// Find returns the counterparty with the given id, or nil.
func (d *Directory) Find(ctx context.Context, id string) *model.Counterparty {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, entry := range d.entries {
		if entry.ID == id {
			entry.UnreadCount = d.counters.Get(model.ChannelKey{
				Kind:           model.ChannelCounterparty,
				CounterpartyID: entry.ID,
			}.String())
			return &entry
		}
	}
	return nil
}

// SeedEntries is the static list used when no backend directory is
// configured or the prefetch fails.
func SeedEntries() []model.Counterparty {
	return []model.Counterparty{
		{
			ID:       "t-101",
			Name:     model.LocalizedText{Arabic: "أ. سارة", English: "Ms. Sara", Urdu: "محترمہ سارہ"},
			Subject:  model.LocalizedText{Arabic: "رياضيات", English: "Mathematics", Urdu: "ریاضی"},
			IsOnline: true,
		},
		{
			ID:       "t-102",
			Name:     model.LocalizedText{Arabic: "أ. خالد", English: "Mr. Khalid", Urdu: "جناب خالد"},
			Subject:  model.LocalizedText{Arabic: "فيزياء", English: "Physics", Urdu: "طبیعیات"},
			IsOnline: false,
		},
		{
			ID:       "t-103",
			Name:     model.LocalizedText{Arabic: "أ. مريم", English: "Ms. Maryam", Urdu: "محترمہ مریم"},
			Subject:  model.LocalizedText{Arabic: "لغة إنجليزية", English: "English", Urdu: "انگریزی"},
			IsOnline: true,
		},
	}
}
