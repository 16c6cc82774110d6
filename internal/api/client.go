// Package api declares the endpoint groups of the SMS campaign backend: one
// service per resource family, each an arrangement of queries (cached, tagged)
// and mutations (tag-invalidating) over the shared gateway. Services hold no
// state of their own; deduplication and staleness live in the cache store.
package api

import (
	"context"
	"net/url"
	"strconv"
	"sync"

	"sms-campaign-client/internal/cache"
	"sms-campaign-client/internal/gateway"
)

const (
	defaultPage = 0
	defaultSize = 20
)

// ListParams is the pagination input every list query accepts. The zero value
// means page 0, size 20.
type ListParams struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

func (p ListParams) withDefaults() ListParams {
	if p.Page < 0 {
		p.Page = defaultPage
	}
	if p.Size <= 0 {
		p.Size = defaultSize
	}
	return p
}

func (p ListParams) query() url.Values {
	p = p.withDefaults()
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("size", strconv.Itoa(p.Size))
	return q
}

// Client bundles the endpoint groups over one gateway and one cache store.
type Client struct {
	gw    *gateway.Gateway
	store *cache.Store

	Contacts  *ContactsService
	Groups    *ContactGroupsService
	Senders   *SendersService
	ApiKeys   *ApiKeysService
	Sms       *SmsService
	Payments  *PaymentsService
	Profile   *ProfileService
	Admin     *AdminService
	Dashboard *DashboardService

	registerMu   sync.Mutex
	registerDone bool
}

func NewClient(gw *gateway.Gateway, store *cache.Store) *Client {
	c := &Client{gw: gw, store: store}
	c.Contacts = &ContactsService{c: c}
	c.Groups = &ContactGroupsService{c: c}
	c.Senders = &SendersService{c: c}
	c.ApiKeys = &ApiKeysService{c: c}
	c.Sms = &SmsService{c: c}
	c.Payments = &PaymentsService{c: c}
	c.Profile = &ProfileService{c: c}
	c.Admin = &AdminService{c: c}
	c.Dashboard = &DashboardService{c: c}
	return c
}

// Store exposes the cache for subscriber management by the consumer layer.
func (c *Client) Store() *cache.Store {
	return c.store
}

// runQuery routes a typed fetch through the cache store.
func runQuery[T any](ctx context.Context, c *Client, key string, fetch func(ctx context.Context) (T, []cache.Tag, error)) (T, error) {
	v, err := c.store.Query(ctx, key, func(ctx context.Context) (any, []cache.Tag, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// invalidate applies a successful mutation's declared tags.
func (c *Client) invalidate(err error, tags ...cache.Tag) error {
	if err != nil {
		return err
	}
	c.store.Invalidate(tags)
	return nil
}
