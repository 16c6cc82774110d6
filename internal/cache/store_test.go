package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fetchValue(v any, tags ...Tag) FetchFunc {
	return func(ctx context.Context) (any, []Tag, error) {
		return v, tags, nil
	}
}

func TestQuery_servesFromCache(t *testing.T) {
	store := NewStore(time.Minute)
	var calls int32
	fetch := func(ctx context.Context) (any, []Tag, error) {
		atomic.AddInt32(&calls, 1)
		return "v1", []Tag{ListTag(KindContact)}, nil
	}

	for i := 0; i < 3; i++ {
		v, err := store.Query(context.Background(), "k", fetch)
		require.NoError(t, err)
		assert.Equal(t, "v1", v)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "repeat queries must be served from memory")
}

func TestQuery_dedupesConcurrentFetches(t *testing.T) {
	store := NewStore(time.Minute)
	var calls int32
	release := make(chan struct{})

	fetch := func(ctx context.Context) (any, []Tag, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "shared", nil, nil
	}

	const n = 8
	var wg sync.WaitGroup
	results := make([]any, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := store.Query(context.Background(), "k", fetch)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	// Let all goroutines pile onto the in-flight fetch.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "concurrent identical queries must share one call")
	for _, v := range results {
		assert.Equal(t, "shared", v)
	}
}

func TestInvalidate_marksOnlyOverlappingTags(t *testing.T) {
	store := NewStore(time.Minute)
	ctx := context.Background()

	_, err := store.Query(ctx, "contacts", fetchValue("contacts", ListTag(KindContact), IDTag(KindContact, "c1")))
	require.NoError(t, err)
	_, err = store.Query(ctx, "senders", fetchValue("senders", ListTag(KindSender)))
	require.NoError(t, err)

	store.Invalidate([]Tag{ListTag(KindContact)})

	_, contactsStale := store.EntryState("contacts")
	_, sendersStale := store.EntryState("senders")
	assert.True(t, contactsStale, "overlapping entry must be stale")
	assert.False(t, sendersStale, "non-overlapping entry must be untouched")
}

func TestInvalidate_refetchOnNextAccess(t *testing.T) {
	store := NewStore(time.Minute)
	ctx := context.Background()
	var calls int32

	fetch := func(ctx context.Context) (any, []Tag, error) {
		n := atomic.AddInt32(&calls, 1)
		return n, []Tag{ListTag(KindContactGroup)}, nil
	}

	v, err := store.Query(ctx, "groups", fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(1), v)

	store.Invalidate([]Tag{ListTag(KindContactGroup)})
	// Nothing refetched eagerly.
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	v, err = store.Query(ctx, "groups", fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(2), v, "stale entry must refetch on next access")

	state, stale := store.EntryState("groups")
	assert.Equal(t, StateSuccess, state)
	assert.False(t, stale)
}

func TestInvalidate_byIDTag(t *testing.T) {
	store := NewStore(time.Minute)
	ctx := context.Background()

	_, err := store.Query(ctx, "contact-c1", fetchValue("c1", IDTag(KindContact, "c1")))
	require.NoError(t, err)
	_, err = store.Query(ctx, "contact-c2", fetchValue("c2", IDTag(KindContact, "c2")))
	require.NoError(t, err)

	store.Invalidate([]Tag{IDTag(KindContact, "c1")})

	_, c1Stale := store.EntryState("contact-c1")
	_, c2Stale := store.EntryState("contact-c2")
	assert.True(t, c1Stale)
	assert.False(t, c2Stale, "id-scoped invalidation must not hit other ids")
}

func TestQuery_errorRetriesOnNextAccess(t *testing.T) {
	store := NewStore(time.Minute)
	ctx := context.Background()
	var calls int32
	boom := errors.New("backend down")

	fetch := func(ctx context.Context) (any, []Tag, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, nil, boom
		}
		return "recovered", nil, nil
	}

	_, err := store.Query(ctx, "k", fetch)
	require.ErrorIs(t, err, boom)

	state, _ := store.EntryState("k")
	assert.Equal(t, StateError, state)

	v, err := store.Query(ctx, "k", fetch)
	require.NoError(t, err)
	assert.Equal(t, "recovered", v)
}

func TestSubscribe_pinsEntryPastGracePeriod(t *testing.T) {
	store := NewStore(20 * time.Millisecond)
	ctx := context.Background()

	sub := store.Subscribe("k")
	_, err := store.Query(ctx, "k", fetchValue("v"))
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)
	state, _ := store.EntryState("k")
	assert.Equal(t, StateSuccess, state, "subscribed entry must survive the grace period")

	sub.Close()
	time.Sleep(60 * time.Millisecond)
	state, _ = store.EntryState("k")
	assert.Equal(t, StateUninitialized, state, "entry must be disposed after the last subscriber leaves")
}

func TestSubscribe_cancelsPendingDisposal(t *testing.T) {
	store := NewStore(30 * time.Millisecond)
	ctx := context.Background()

	_, err := store.Query(ctx, "k", fetchValue("v"))
	require.NoError(t, err)

	// Resubscribing within the grace period keeps the entry alive.
	sub := store.Subscribe("k")
	time.Sleep(60 * time.Millisecond)
	state, _ := store.EntryState("k")
	assert.Equal(t, StateSuccess, state)
	sub.Close()
}

func TestKey_deterministic(t *testing.T) {
	type args struct {
		Page int `json:"page"`
		Size int `json:"size"`
	}
	k1 := Key("getContacts", args{Page: 1, Size: 5})
	k2 := Key("getContacts", args{Page: 1, Size: 5})
	k3 := Key("getContacts", args{Page: 2, Size: 5})

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.Equal(t, "getContacts()", Key("getContacts", nil))
}
