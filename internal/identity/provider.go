package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// expirySkew is how close to expiry a token may get before Token refreshes it.
const expirySkew = 30 * time.Second

// TokenSource supplies bearer credentials to the gateway. Token must return a
// currently-valid access token, refreshing just-in-time when needed. Login is
// the interactive re-authentication side effect the gateway fires on a 401.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Login(ctx context.Context) error
	Logout()
}

// Provider exchanges a refresh token for access tokens against an OAuth-style
// token endpoint. It is safe for concurrent use; all callers share one cached
// access token.
type Provider struct {
	tokenURL   string
	loginURL   string
	clientID   string
	httpClient *http.Client

	mu           sync.Mutex
	refreshToken string
	accessToken  string
	expiresAt    time.Time
}

func NewProvider(tokenURL, loginURL, clientID, refreshToken string) *Provider {
	return &Provider{
		tokenURL:     tokenURL,
		loginURL:     loginURL,
		clientID:     clientID,
		refreshToken: refreshToken,
		httpClient:   &http.Client{},
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Token returns the cached access token, refreshing it first if it expires
// within expirySkew. A refresh failure is returned to the caller; the gateway
// treats it as "proceed unauthenticated".
func (p *Provider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.accessToken != "" && time.Until(p.expiresAt) > expirySkew {
		return p.accessToken, nil
	}
	if err := p.refreshLocked(ctx); err != nil {
		return "", err
	}
	return p.accessToken, nil
}

func (p *Provider) refreshLocked(ctx context.Context) error {
	if p.tokenURL == "" || p.refreshToken == "" {
		return fmt.Errorf("identity: no token endpoint or refresh token configured")
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("client_id", p.clientID)
	form.Set("refresh_token", p.refreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("identity: token refresh failed: %s - %s", resp.Status, string(body))
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return err
	}
	if tr.AccessToken == "" {
		return fmt.Errorf("identity: token endpoint returned no access_token")
	}

	p.accessToken = tr.AccessToken
	if tr.RefreshToken != "" {
		p.refreshToken = tr.RefreshToken
	}
	p.expiresAt = tokenExpiry(tr)
	return nil
}

// tokenExpiry prefers the explicit expires_in; failing that it reads the exp
// claim out of the JWT without verifying the signature (the backend verifies,
// the client only needs the deadline).
func tokenExpiry(tr tokenResponse) time.Time {
	if tr.ExpiresIn > 0 {
		return time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tr.AccessToken, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Time
		}
	}
	// Unknown lifetime: force a refresh on the next call.
	return time.Now()
}

// Login is the interactive re-authentication hook. In the browser original
// this redirects to the identity provider; here it can only surface the URL
// the operator must visit.
func (p *Provider) Login(ctx context.Context) error {
	if p.loginURL == "" {
		return fmt.Errorf("identity: no login URL configured")
	}
	log.Printf("Re-authentication required, visit %s", p.loginURL)
	return nil
}

// Logout drops all cached credentials.
func (p *Provider) Logout() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.accessToken = ""
	p.refreshToken = ""
	p.expiresAt = time.Time{}
}

// StaticTokenSource returns the same token forever and has no interactive
// login. Used by the CLI against the dev server and by tests.
type StaticTokenSource struct {
	AccessToken string
}

func (s *StaticTokenSource) Token(ctx context.Context) (string, error) { return s.AccessToken, nil }
func (s *StaticTokenSource) Login(ctx context.Context) error           { return nil }
func (s *StaticTokenSource) Logout()                                   {}
