package api

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"sms-campaign-client/internal/cache"
	"sms-campaign-client/pkg/models"
)

type ContactsService struct {
	c *Client
}

func contactPageTags(page models.Page[models.Contact]) []cache.Tag {
	tags := []cache.Tag{cache.ListTag(cache.KindContact)}
	for _, item := range page.Items {
		tags = append(tags, cache.IDTag(cache.KindContact, item.ID))
	}
	return tags
}

func (s *ContactsService) List(ctx context.Context, params ListParams) (models.Page[models.Contact], error) {
	params = params.withDefaults()
	key := cache.Key("getContacts", params)
	return runQuery(ctx, s.c, key, func(ctx context.Context) (models.Page[models.Contact], []cache.Tag, error) {
		body, err := s.c.gw.GetBytes(ctx, "/api/contacts", params.query())
		if err != nil {
			return models.Page[models.Contact]{}, nil, err
		}
		page, err := models.DecodePage[models.Contact](body)
		if err != nil {
			return models.Page[models.Contact]{}, nil, err
		}
		return page, contactPageTags(page), nil
	})
}

func (s *ContactsService) Get(ctx context.Context, id string) (models.Contact, error) {
	key := cache.Key("getContact", id)
	return runQuery(ctx, s.c, key, func(ctx context.Context) (models.Contact, []cache.Tag, error) {
		var contact models.Contact
		err := s.c.gw.DoJSON(ctx, http.MethodGet, "/api/contacts/"+id, nil, nil, &contact)
		if err != nil {
			return models.Contact{}, nil, err
		}
		return contact, []cache.Tag{cache.IDTag(cache.KindContact, id)}, nil
	})
}

type CreateContactRequest struct {
	Phone string `json:"phone"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

func (s *ContactsService) Create(ctx context.Context, req CreateContactRequest) (models.Contact, error) {
	var contact models.Contact
	err := s.c.gw.DoJSON(ctx, http.MethodPost, "/api/contacts", nil, req, &contact)
	return contact, s.c.invalidate(err, cache.ListTag(cache.KindContact))
}

type UpdateContactRequest struct {
	Phone string `json:"phone,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

func (s *ContactsService) Update(ctx context.Context, id string, req UpdateContactRequest) (models.Contact, error) {
	var contact models.Contact
	err := s.c.gw.DoJSON(ctx, http.MethodPut, "/api/contacts/"+id, nil, req, &contact)
	return contact, s.c.invalidate(err,
		cache.IDTag(cache.KindContact, id),
		cache.ListTag(cache.KindContact))
}

func (s *ContactsService) Delete(ctx context.Context, id string) error {
	err := s.c.gw.DoJSON(ctx, http.MethodDelete, "/api/contacts/"+id, nil, nil, nil)
	return s.c.invalidate(err,
		cache.IDTag(cache.KindContact, id),
		cache.ListTag(cache.KindContact))
}

func (s *ContactsService) SearchByPhone(ctx context.Context, phone string) (models.Page[models.Contact], error) {
	key := cache.Key("searchContactsByPhone", phone)
	return runQuery(ctx, s.c, key, func(ctx context.Context) (models.Page[models.Contact], []cache.Tag, error) {
		q := url.Values{}
		q.Set("phone", phone)
		body, err := s.c.gw.GetBytes(ctx, "/api/contacts/search/by-phone", q)
		if err != nil {
			return models.Page[models.Contact]{}, nil, err
		}
		page, err := models.DecodePage[models.Contact](body)
		if err != nil {
			return models.Page[models.Contact]{}, nil, err
		}
		return page, contactPageTags(page), nil
	})
}

type listByGroupArgs struct {
	GroupID string `json:"groupId"`
	ListParams
}

func (s *ContactsService) ListByGroup(ctx context.Context, groupID string, params ListParams) (models.Page[models.Contact], error) {
	params = params.withDefaults()
	key := cache.Key("getContactsByGroup", listByGroupArgs{GroupID: groupID, ListParams: params})
	return runQuery(ctx, s.c, key, func(ctx context.Context) (models.Page[models.Contact], []cache.Tag, error) {
		body, err := s.c.gw.GetBytes(ctx, "/api/contacts/group/"+groupID, params.query())
		if err != nil {
			return models.Page[models.Contact]{}, nil, err
		}
		page, err := models.DecodePage[models.Contact](body)
		if err != nil {
			return models.Page[models.Contact]{}, nil, err
		}
		tags := append(contactPageTags(page), cache.IDTag(cache.KindContactGroup, groupID))
		return page, tags, nil
	})
}

// UploadResult is the backend's summary of a bulk contact import.
type UploadResult struct {
	Imported int64  `json:"imported"`
	Skipped  int64  `json:"skipped"`
	Message  string `json:"message,omitempty"`
}

// Upload imports contacts from a CSV/XLSX file. The file travels under the
// multipart key "file"; groupId is included only when provided. No content
// type is set here, the gateway derives it from the multipart boundary.
func (s *ContactsService) Upload(ctx context.Context, fileName string, file io.Reader, groupID string) (UploadResult, error) {
	fields := map[string]string{}
	if groupID != "" {
		fields["groupId"] = groupID
	}
	var result UploadResult
	err := s.c.gw.DoMultipart(ctx, http.MethodPost, "/api/contacts/upload-file", fields, "file", fileName, file, &result)
	tags := []cache.Tag{cache.ListTag(cache.KindContact)}
	if groupID != "" {
		tags = append(tags,
			cache.IDTag(cache.KindContactGroup, groupID),
			cache.ListTag(cache.KindContactGroup))
	}
	return result, s.c.invalidate(err, tags...)
}
