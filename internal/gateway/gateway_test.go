package gateway

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTokenSource counts Login invocations and can fail refreshes.
type recordingTokenSource struct {
	token      string
	tokenErr   error
	loginCalls int32
}

func (r *recordingTokenSource) Token(ctx context.Context) (string, error) {
	return r.token, r.tokenErr
}

func (r *recordingTokenSource) Login(ctx context.Context) error {
	atomic.AddInt32(&r.loginCalls, 1)
	return nil
}

func (r *recordingTokenSource) Logout() {}

func TestDoJSON_attachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	gw := New(srv.URL, &recordingTokenSource{token: "tok-123"})
	err := gw.DoJSON(context.Background(), http.MethodGet, "/api/profile", nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestDoJSON_failOpenOnRefreshError(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	tokens := &recordingTokenSource{tokenErr: errors.New("idp unreachable")}
	gw := New(srv.URL, tokens)
	err := gw.DoJSON(context.Background(), http.MethodGet, "/api/contacts", nil, nil, nil)

	require.NoError(t, err, "refresh failure must not block the request")
	assert.Empty(t, gotAuth, "request must go out unauthenticated")
}

func TestDoJSON_unauthorizedTriggersSingleLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"token expired"}`))
	}))
	defer srv.Close()

	tokens := &recordingTokenSource{token: "expired"}
	gw := New(srv.URL, tokens)
	err := gw.DoJSON(context.Background(), http.MethodGet, "/api/contacts", nil, nil, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr, "401 must still surface the original error")
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "token expired", apiErr.Message)
	assert.Equal(t, int32(1), atomic.LoadInt32(&tokens.loginCalls), "exactly one login side effect per occurrence")

	// A second 401 is a second occurrence.
	_ = gw.DoJSON(context.Background(), http.MethodGet, "/api/contacts", nil, nil, nil)
	assert.Equal(t, int32(2), atomic.LoadInt32(&tokens.loginCalls))
}

func TestDoJSON_typedErrorOnServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"phone is invalid"}`))
	}))
	defer srv.Close()

	tokens := &recordingTokenSource{token: "tok"}
	gw := New(srv.URL, tokens)
	err := gw.DoJSON(context.Background(), http.MethodPost, "/api/contacts", nil, map[string]string{"phone": "x"}, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "phone is invalid", apiErr.Message)
	assert.Equal(t, int32(0), atomic.LoadInt32(&tokens.loginCalls), "only 401 triggers login")
}

func TestDoJSON_singleAttempt(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	gw := New(srv.URL, &recordingTokenSource{token: "tok"})
	err := gw.DoJSON(context.Background(), http.MethodGet, "/api/contacts", nil, nil, nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "no retry on failure")
}

func TestDoMultipart_contentTypeAndFileField(t *testing.T) {
	var (
		gotContentType string
		gotFile        []byte
		gotFileName    string
		gotFields      map[string]string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotFields = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			gotFields[k] = v[0]
		}
		f, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		gotFileName = header.Filename
		gotFile, _ = io.ReadAll(f)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	gw := New(srv.URL, &recordingTokenSource{token: "tok"})
	err := gw.DoMultipart(context.Background(), http.MethodPost, "/api/contacts/upload-file",
		map[string]string{"groupId": "g1"}, "file", "contacts.csv", strings.NewReader("+100\n+200\n"), nil)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(gotContentType, "multipart/form-data; boundary="),
		"content type must come from the multipart writer, got %q", gotContentType)
	assert.Equal(t, "contacts.csv", gotFileName)
	assert.Equal(t, "+100\n+200\n", string(gotFile))
	assert.Equal(t, "g1", gotFields["groupId"])
}

func TestGetBytes_returnsRawBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("size"))
		w.Write([]byte(`{"content":[],"totalElements":0}`))
	}))
	defer srv.Close()

	gw := New(srv.URL, &recordingTokenSource{token: "tok"})
	q := url.Values{}
	q.Set("size", "5")
	body, err := gw.GetBytes(context.Background(), "/api/contacts", q)
	require.NoError(t, err)
	assert.JSONEq(t, `{"content":[],"totalElements":0}`, string(body))
}
