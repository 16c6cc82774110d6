package api

import (
	"context"
	"net/http"

	"sms-campaign-client/internal/cache"
	"sms-campaign-client/pkg/models"
)

type ApiKeysService struct {
	c *Client
}

func (s *ApiKeysService) List(ctx context.Context, params ListParams) (models.Page[models.ApiKey], error) {
	params = params.withDefaults()
	key := cache.Key("getApiKeys", params)
	return runQuery(ctx, s.c, key, func(ctx context.Context) (models.Page[models.ApiKey], []cache.Tag, error) {
		body, err := s.c.gw.GetBytes(ctx, "/api/api-keys", params.query())
		if err != nil {
			return models.Page[models.ApiKey]{}, nil, err
		}
		page, err := models.DecodePage[models.ApiKey](body)
		if err != nil {
			return models.Page[models.ApiKey]{}, nil, err
		}
		tags := []cache.Tag{cache.ListTag(cache.KindApiKey)}
		for _, k := range page.Items {
			tags = append(tags, cache.IDTag(cache.KindApiKey, k.ID))
		}
		return page, tags, nil
	})
}

type CreateApiKeyRequest struct {
	Name     string `json:"name"`
	SenderID string `json:"senderId"`
}

// Create returns the key with its secret populated. The secret is shown once;
// subsequent listings omit it.
func (s *ApiKeysService) Create(ctx context.Context, req CreateApiKeyRequest) (models.ApiKey, error) {
	var key models.ApiKey
	err := s.c.gw.DoJSON(ctx, http.MethodPost, "/api/api-keys", nil, req, &key)
	return key, s.c.invalidate(err, cache.ListTag(cache.KindApiKey))
}

// Revoke permanently disables a key. There is no un-revoke.
func (s *ApiKeysService) Revoke(ctx context.Context, id string) error {
	err := s.c.gw.DoJSON(ctx, http.MethodDelete, "/api/api-keys/"+id, nil, nil, nil)
	return s.c.invalidate(err,
		cache.IDTag(cache.KindApiKey, id),
		cache.ListTag(cache.KindApiKey))
}
