package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyDeliversEvent(t *testing.T) {
	var got Event
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx := context.Background()
	n := NewNotifier(ctx, srv.URL, "test-token")
	o := &Order{ID: "ORD-ABCD1234", Total: 42.50}

	require.NoError(t, n.Notify(ctx, "order.created", o))
	assert.Equal(t, "order.created", got.Type)
	assert.Equal(t, "ORD-ABCD1234", got.Order.ID)
}

func TestNotifyRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx := context.Background()
	n := NewNotifier(ctx, srv.URL, "")

	require.NoError(t, n.Notify(ctx, "order.paid", &Order{ID: "ORD-RETRY001"}))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(3))
}

func TestNotifyClientErrorIsPermanent(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	ctx := context.Background()
	n := NewNotifier(ctx, srv.URL, "bad-token")

	assert.Error(t, n.Notify(ctx, "order.created", &Order{ID: "ORD-DENY0001"}))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestNotifyNoURLIsNoop(t *testing.T) {
	n := NewNotifier(context.Background(), "", "")
	assert.NoError(t, n.Notify(context.Background(), "order.created", &Order{ID: "ORD-NOOP0001"}))
}
