package api

import (
	"context"
	"net/http"

	"sms-campaign-client/internal/cache"
	"sms-campaign-client/pkg/models"
)

type SendersService struct {
	c *Client
}

func (s *SendersService) List(ctx context.Context, params ListParams) (models.Page[models.Sender], error) {
	params = params.withDefaults()
	key := cache.Key("getSenders", params)
	return runQuery(ctx, s.c, key, func(ctx context.Context) (models.Page[models.Sender], []cache.Tag, error) {
		body, err := s.c.gw.GetBytes(ctx, "/api/senders", params.query())
		if err != nil {
			return models.Page[models.Sender]{}, nil, err
		}
		page, err := models.DecodePage[models.Sender](body)
		if err != nil {
			return models.Page[models.Sender]{}, nil, err
		}
		tags := []cache.Tag{cache.ListTag(cache.KindSender)}
		for _, sender := range page.Items {
			tags = append(tags, cache.IDTag(cache.KindSender, sender.ID))
		}
		return page, tags, nil
	})
}

func (s *SendersService) Get(ctx context.Context, id string) (models.Sender, error) {
	key := cache.Key("getSender", id)
	return runQuery(ctx, s.c, key, func(ctx context.Context) (models.Sender, []cache.Tag, error) {
		var sender models.Sender
		err := s.c.gw.DoJSON(ctx, http.MethodGet, "/api/senders/"+id, nil, nil, &sender)
		if err != nil {
			return models.Sender{}, nil, err
		}
		return sender, []cache.Tag{cache.IDTag(cache.KindSender, id)}, nil
	})
}

type SenderRequest struct {
	Name    string `json:"name"`
	Message string `json:"message,omitempty"`
}

func (s *SendersService) Create(ctx context.Context, req SenderRequest) (models.Sender, error) {
	var sender models.Sender
	err := s.c.gw.DoJSON(ctx, http.MethodPost, "/api/senders", nil, req, &sender)
	return sender, s.c.invalidate(err, cache.ListTag(cache.KindSender))
}

func (s *SendersService) Update(ctx context.Context, id string, req SenderRequest) (models.Sender, error) {
	var sender models.Sender
	err := s.c.gw.DoJSON(ctx, http.MethodPut, "/api/senders/"+id, nil, req, &sender)
	return sender, s.c.invalidate(err,
		cache.IDTag(cache.KindSender, id),
		cache.ListTag(cache.KindSender))
}

func (s *SendersService) Delete(ctx context.Context, id string) error {
	err := s.c.gw.DoJSON(ctx, http.MethodDelete, "/api/senders/"+id, nil, nil, nil)
	return s.c.invalidate(err,
		cache.IDTag(cache.KindSender, id),
		cache.ListTag(cache.KindSender),
		// API keys carry the sender name; their listing goes stale with it.
		cache.ListTag(cache.KindApiKey))
}
