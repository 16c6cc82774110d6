package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"sms-campaign-client/internal/identity"
)

// APIError is the typed result of any non-2xx response. Message is the
// server-provided message when one could be extracted from the body.
type APIError struct {
	Status  int
	Message string
	Body    []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error: %d - %s", e.Status, e.Message)
	}
	return fmt.Sprintf("API error: %d", e.Status)
}

// Gateway is the single configured request function shared by every endpoint
// group. It attaches a just-in-time bearer token, surfaces non-2xx responses
// as *APIError, and fires the identity provider's Login hook on a 401. One
// attempt per call; no retries, no backoff, no queueing.
type Gateway struct {
	baseURL    string
	tokens     identity.TokenSource
	httpClient *http.Client
}

func New(baseURL string, tokens identity.TokenSource) *Gateway {
	return &Gateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{},
	}
}

// send performs the single HTTP attempt. Token refresh failure is fail-open:
// the request goes out unauthenticated and the server decides.
func (g *Gateway) send(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader) ([]byte, error) {
	u := g.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}

	token, err := g.tokens.Token(ctx)
	if err != nil {
		log.Printf("Warning: token refresh failed, sending unauthenticated: %v", err)
	} else if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{
			Status:  resp.StatusCode,
			Message: extractMessage(respBody),
			Body:    respBody,
		}
		if resp.StatusCode == http.StatusUnauthorized {
			// Side effect only; the original error still goes to the caller.
			if loginErr := g.tokens.Login(ctx); loginErr != nil {
				log.Printf("Warning: login redirect failed: %v", loginErr)
			}
		}
		return respBody, apiErr
	}

	return respBody, nil
}

// GetBytes fetches a raw body for callers that do their own defensive
// decoding (list endpoints with dialect tolerance).
func (g *Gateway) GetBytes(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return g.send(ctx, http.MethodGet, path, query, "", nil)
}

// DoJSON sends an optional JSON body and decodes the response into out when
// out is non-nil. An empty response body with a non-nil out is left as the
// zero value rather than treated as an error.
func (g *Gateway) DoJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}

	respBody, err := g.send(ctx, method, path, query, contentType, reader)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	return json.Unmarshal(respBody, out)
}

// DoMultipart sends fields plus one file part. The content type, boundary
// included, is computed from the writer here; endpoint groups never set one.
func (g *Gateway) DoMultipart(ctx context.Context, method, path string, fields map[string]string, fileField, fileName string, file io.Reader, out any) error {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	part, err := writer.CreateFormFile(fileField, fileName)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return err
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}

	respBody, err := g.send(ctx, method, path, nil, writer.FormDataContentType(), buf)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	return json.Unmarshal(respBody, out)
}

func extractMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
