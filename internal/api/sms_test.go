package api

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendBulkFile_multipartShape(t *testing.T) {
	var (
		gotSender, gotMessage, gotFile string
		gotContentType                 string
	)
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotSender = r.PostFormValue("senderId")
		gotMessage = r.PostFormValue("message")
		f, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		gotFile = string(data)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"job-1","status":"COMPLETED","totalRecipients":2}`))
	}))

	job, err := client.Sms.SendBulkFile(context.Background(), "s1", "hello",
		"recipients.csv", strings.NewReader("+1\n+2\n"))
	require.NoError(t, err)

	assert.Equal(t, "job-1", job.ID)
	assert.Equal(t, int64(2), job.TotalRecipients)
	assert.Equal(t, "s1", gotSender)
	assert.Equal(t, "hello", gotMessage)
	assert.Equal(t, "+1\n+2\n", gotFile)
	assert.True(t, strings.HasPrefix(gotContentType, "multipart/form-data; boundary="))
}

func TestSendSingle_invalidatesJobListAndDashboard(t *testing.T) {
	var jobListCalls, dashboardCalls int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/sms/jobs":
			atomic.AddInt32(&jobListCalls, 1)
			w.Write([]byte(`{"items":[],"total":0,"page":0,"size":20}`))
		case "/api/dashboard":
			atomic.AddInt32(&dashboardCalls, 1)
			w.Write([]byte(`{"totalSent":0}`))
		case "/api/sms/single":
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"job-1","status":"COMPLETED"}`))
		}
	}))

	ctx := context.Background()
	_, err := client.Sms.ListJobs(ctx, ListParams{})
	require.NoError(t, err)
	_, err = client.Dashboard.Stats(ctx)
	require.NoError(t, err)

	_, err = client.Sms.SendSingle(ctx, SendSingleRequest{SenderID: "s1", To: "+1", Message: "hi"})
	require.NoError(t, err)

	_, err = client.Sms.ListJobs(ctx, ListParams{})
	require.NoError(t, err)
	_, err = client.Dashboard.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&jobListCalls))
	assert.Equal(t, int32(2), atomic.LoadInt32(&dashboardCalls))
}

func TestApiKeyCreate_returnsSecretOnce(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"k1","senderId":"s1","senderName":"ACME","apiKey":"sk_secret","name":"prod"}`))
		case http.MethodGet:
			w.Write([]byte(`{"items":[{"id":"k1","senderId":"s1","senderName":"ACME","name":"prod"}],"total":1}`))
		}
	}))

	ctx := context.Background()
	created, err := client.ApiKeys.Create(ctx, CreateApiKeyRequest{Name: "prod", SenderID: "s1"})
	require.NoError(t, err)
	assert.Equal(t, "sk_secret", created.ApiKey)

	page, err := client.ApiKeys.List(ctx, ListParams{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Empty(t, page.Items[0].ApiKey, "listing omits the secret")
}
