package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ostazi/chat-core/internal/model"
	"github.com/ostazi/chat-core/internal/store"
	"github.com/ostazi/chat-core/pkg/logger"
)

func TestListReadsThroughUnreadCounts(t *testing.T) {
	counters := store.NewMemoryStore()
	counters.Set("counterparty:t-101", 5)

	d := New(SeedEntries(), counters, logger.NewNop())

	entries := d.List(context.Background())
	require.Len(t, entries, 3)
	assert.Equal(t, 5, entries[0].UnreadCount)
	assert.Equal(t, 0, entries[1].UnreadCount)
}

func TestFind(t *testing.T) {
	d := New(SeedEntries(), store.NewMemoryStore(), logger.NewNop())

	cp := d.Find(context.Background(), "t-102")
	require.NotNil(t, cp)
	assert.Equal(t, "Mr. Khalid", cp.Name.In(model.LocaleEnglish))

	assert.Nil(t, d.Find(context.Background(), "nobody"))
}

func TestPrefetchReplacesEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/counterparties", r.URL.Path)
		json.NewEncoder(w).Encode([]model.Counterparty{
			{ID: "t-900", Name: model.LocalizedText{English: "Mr. Omar"}, IsOnline: true},
		})
	}))
	defer srv.Close()

	d := New(SeedEntries(), store.NewMemoryStore(), logger.NewNop())
	require.NoError(t, d.Prefetch(context.Background(), srv.URL, srv.Client()))

	entries := d.List(context.Background())
	require.Len(t, entries, 1)
	assert.Equal(t, "t-900", entries[0].ID)
}

func TestPrefetchFailureKeepsSeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := New(SeedEntries(), store.NewMemoryStore(), logger.NewNop())
	assert.Error(t, d.Prefetch(context.Background(), srv.URL, srv.Client()))
	assert.Len(t, d.List(context.Background()), 3)
}
