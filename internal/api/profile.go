package api

import (
	"context"
	"net/http"

	"sms-campaign-client/internal/cache"
	"sms-campaign-client/pkg/models"
)

type ProfileService struct {
	c *Client
}

func (s *ProfileService) Get(ctx context.Context) (models.Profile, error) {
	key := cache.Key("getProfile", nil)
	return runQuery(ctx, s.c, key, func(ctx context.Context) (models.Profile, []cache.Tag, error) {
		var profile models.Profile
		err := s.c.gw.DoJSON(ctx, http.MethodGet, "/api/profile", nil, nil, &profile)
		if err != nil {
			return models.Profile{}, nil, err
		}
		return profile, []cache.Tag{cache.ListTag(cache.KindProfile)}, nil
	})
}

// UpdateProfileRequest deliberately carries only the two fields the client is
// allowed to change, even though the profile DTO has more.
type UpdateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (s *ProfileService) Update(ctx context.Context, req UpdateProfileRequest) (models.Profile, error) {
	var profile models.Profile
	err := s.c.gw.DoJSON(ctx, http.MethodPut, "/api/profile", nil, req, &profile)
	return profile, s.c.invalidate(err, cache.ListTag(cache.KindProfile))
}
