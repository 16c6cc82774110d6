package api

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureTenantRegistered_runsOncePerProcess(t *testing.T) {
	var calls int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusCreated)
	}))

	ctx := context.Background()
	req := RegisterTenantRequest{Name: "ACME", Email: "acme@example.com"}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, client.EnsureTenantRegistered(ctx, req))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "registration must fire at most once")

	require.NoError(t, client.EnsureTenantRegistered(ctx, req))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestEnsureTenantRegistered_retriesAfterFailure(t *testing.T) {
	var calls int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))

	ctx := context.Background()
	req := RegisterTenantRequest{Name: "ACME", Email: "acme@example.com"}

	require.Error(t, client.EnsureTenantRegistered(ctx, req))
	require.NoError(t, client.EnsureTenantRegistered(ctx, req), "a failed attempt clears the guard")
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
