package api

import (
	"context"
	"net/http"

	"sms-campaign-client/internal/cache"
	"sms-campaign-client/pkg/models"
)

type ContactGroupsService struct {
	c *Client
}

func (s *ContactGroupsService) List(ctx context.Context, params ListParams) (models.Page[models.ContactGroup], error) {
	params = params.withDefaults()
	key := cache.Key("getContactGroups", params)
	return runQuery(ctx, s.c, key, func(ctx context.Context) (models.Page[models.ContactGroup], []cache.Tag, error) {
		body, err := s.c.gw.GetBytes(ctx, "/api/contact-groups", params.query())
		if err != nil {
			return models.Page[models.ContactGroup]{}, nil, err
		}
		page, err := models.DecodePage[models.ContactGroup](body)
		if err != nil {
			return models.Page[models.ContactGroup]{}, nil, err
		}
		tags := []cache.Tag{cache.ListTag(cache.KindContactGroup)}
		for _, g := range page.Items {
			tags = append(tags, cache.IDTag(cache.KindContactGroup, g.ID))
		}
		return page, tags, nil
	})
}

func (s *ContactGroupsService) Get(ctx context.Context, id string) (models.ContactGroup, error) {
	key := cache.Key("getContactGroup", id)
	return runQuery(ctx, s.c, key, func(ctx context.Context) (models.ContactGroup, []cache.Tag, error) {
		var group models.ContactGroup
		err := s.c.gw.DoJSON(ctx, http.MethodGet, "/api/contact-groups/"+id, nil, nil, &group)
		if err != nil {
			return models.ContactGroup{}, nil, err
		}
		return group, []cache.Tag{cache.IDTag(cache.KindContactGroup, id)}, nil
	})
}

type ContactGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (s *ContactGroupsService) Create(ctx context.Context, req ContactGroupRequest) (models.ContactGroup, error) {
	var group models.ContactGroup
	err := s.c.gw.DoJSON(ctx, http.MethodPost, "/api/contact-groups", nil, req, &group)
	return group, s.c.invalidate(err, cache.ListTag(cache.KindContactGroup))
}

func (s *ContactGroupsService) Update(ctx context.Context, id string, req ContactGroupRequest) (models.ContactGroup, error) {
	var group models.ContactGroup
	err := s.c.gw.DoJSON(ctx, http.MethodPut, "/api/contact-groups/"+id, nil, req, &group)
	return group, s.c.invalidate(err,
		cache.IDTag(cache.KindContactGroup, id),
		cache.ListTag(cache.KindContactGroup))
}

func (s *ContactGroupsService) Delete(ctx context.Context, id string) error {
	err := s.c.gw.DoJSON(ctx, http.MethodDelete, "/api/contact-groups/"+id, nil, nil, nil)
	return s.c.invalidate(err,
		cache.IDTag(cache.KindContactGroup, id),
		cache.ListTag(cache.KindContactGroup),
		// Membership listings under the deleted group are gone too.
		cache.ListTag(cache.KindContact))
}
