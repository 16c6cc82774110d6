package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileUpdate_sendsOnlyEditableFields(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			data, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(data, &body))
		}
		w.Write([]byte(`{"id":"p1","firstName":"Ada","lastName":"Lovelace","email":"a@example.com"}`))
	}))

	_, err := client.Profile.Update(context.Background(), UpdateProfileRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)

	assert.Len(t, body, 2, "update must carry exactly firstName and lastName")
	assert.Equal(t, "Ada", body["firstName"])
	assert.Equal(t, "Lovelace", body["lastName"])
}

func TestProfileGet_cachedAndInvalidatedByUpdate(t *testing.T) {
	getCalls := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			getCalls++
		}
		w.Write([]byte(`{"id":"p1","firstName":"Dev"}`))
	}))

	ctx := context.Background()
	_, err := client.Profile.Get(ctx)
	require.NoError(t, err)
	_, err = client.Profile.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, getCalls)

	_, err = client.Profile.Update(ctx, UpdateProfileRequest{FirstName: "New"})
	require.NoError(t, err)

	_, err = client.Profile.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, getCalls, "profile update must stale the cached profile")
}
