package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Creating a group makes a previously cached group list refetch and reflect
// the new item, without a manual reload.
func TestGroupCreate_refreshesCachedList(t *testing.T) {
	var created atomic.Bool
	var listCalls int32

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			atomic.AddInt32(&listCalls, 1)
			items := []map[string]any{{"id": "g1", "name": "Existing"}}
			if created.Load() {
				items = append(items, map[string]any{"id": "g2", "name": "Fresh"})
			}
			json.NewEncoder(w).Encode(map[string]any{
				"content":       items,
				"totalElements": len(items),
				"pageNumber":    0,
				"pageSize":      20,
			})
		case r.Method == http.MethodPost:
			created.Store(true)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]any{"id": "g2", "name": "Fresh"})
		}
	}))

	ctx := context.Background()
	page, err := client.Groups.List(ctx, ListParams{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	_, err = client.Groups.Create(ctx, ContactGroupRequest{Name: "Fresh"})
	require.NoError(t, err)

	page, err = client.Groups.List(ctx, ListParams{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2, "refetched list must include the new group")
	assert.Equal(t, int32(2), atomic.LoadInt32(&listCalls))
}

func TestGroupGet_invalidatedByUpdate(t *testing.T) {
	var version atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(map[string]any{
				"id":   "g1",
				"name": "Name v" + string(rune('0'+version.Load())),
			})
		case http.MethodPut:
			version.Add(1)
			json.NewEncoder(w).Encode(map[string]any{"id": "g1", "name": "updated"})
		}
	}))

	ctx := context.Background()
	g, err := client.Groups.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "Name v0", g.Name)

	_, err = client.Groups.Update(ctx, "g1", ContactGroupRequest{Name: "updated"})
	require.NoError(t, err)

	g, err = client.Groups.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "Name v1", g.Name, "entity cache must refetch after its id tag is invalidated")
}

func TestGroupDelete_invalidatesContactLists(t *testing.T) {
	var contactListCalls int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/contacts":
			atomic.AddInt32(&contactListCalls, 1)
			w.Write([]byte(`{"items":[],"total":0,"page":0,"size":20}`))
		case r.Method == http.MethodDelete:
			w.Write([]byte(`{"status":"Group deleted"}`))
		}
	}))

	ctx := context.Background()
	_, err := client.Contacts.List(ctx, ListParams{})
	require.NoError(t, err)

	require.NoError(t, client.Groups.Delete(ctx, "g1"))

	_, err = client.Contacts.List(ctx, ListParams{})
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&contactListCalls),
		"deleting a group also stales contact listings")
}
