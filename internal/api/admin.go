package api

import (
	"context"
	"net/http"

	"sms-campaign-client/internal/cache"
	"sms-campaign-client/pkg/models"
)

// AdminService groups the system-admin operations: tenant inspection, sender
// and SMS-job approval queues, and SMS-package management.
type AdminService struct {
	c *Client
}

func (s *AdminService) ListTenants(ctx context.Context, params ListParams) (models.Page[models.Tenant], error) {
	params = params.withDefaults()
	key := cache.Key("getTenants", params)
	return runQuery(ctx, s.c, key, func(ctx context.Context) (models.Page[models.Tenant], []cache.Tag, error) {
		body, err := s.c.gw.GetBytes(ctx, "/api/admin/tenants", params.query())
		if err != nil {
			return models.Page[models.Tenant]{}, nil, err
		}
		page, err := models.DecodePage[models.Tenant](body)
		if err != nil {
			return models.Page[models.Tenant]{}, nil, err
		}
		tags := []cache.Tag{cache.ListTag(cache.KindTenant)}
		for _, t := range page.Items {
			tags = append(tags, cache.IDTag(cache.KindTenant, t.ID))
		}
		return page, tags, nil
	})
}

func (s *AdminService) GetTenant(ctx context.Context, id string) (models.Tenant, error) {
	key := cache.Key("getTenant", id)
	return runQuery(ctx, s.c, key, func(ctx context.Context) (models.Tenant, []cache.Tag, error) {
		var tenant models.Tenant
		err := s.c.gw.DoJSON(ctx, http.MethodGet, "/api/admin/tenants/"+id, nil, nil, &tenant)
		if err != nil {
			return models.Tenant{}, nil, err
		}
		return tenant, []cache.Tag{cache.IDTag(cache.KindTenant, id)}, nil
	})
}

func (s *AdminService) ListPendingSenders(ctx context.Context, params ListParams) (models.Page[models.Sender], error) {
	params = params.withDefaults()
	key := cache.Key("getPendingSenders", params)
	return runQuery(ctx, s.c, key, func(ctx context.Context) (models.Page[models.Sender], []cache.Tag, error) {
		body, err := s.c.gw.GetBytes(ctx, "/api/admin/senders/pending", params.query())
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

type ApproveSenderRequest struct {
	Approved bool   `json:"approved"`
	Message  string `json:"message,omitempty"`
}

func (s *AdminService) ApproveSender(ctx context.Context, id string, req ApproveSenderRequest) (models.Sender, error) {
	var sender models.Sender
	err := s.c.gw.DoJSON(ctx, http.MethodPost, "/api/admin/senders/"+id+"/approve", nil, req, &sender)
	return sender, s.c.invalidate(err,
		cache.IDTag(cache.KindSender, id),
		cache.ListTag(cache.KindSender))
}

func (s *AdminService) ListPendingSmsJobs(ctx context.Context, params ListParams) (models.Page[models.SmsJob], error) {
	params = params.withDefaults()
	key := cache.Key("getPendingSmsJobs", params)
	return runQuery(ctx, s.c, key, func(ctx context.Context) (models.Page[models.SmsJob], []cache.Tag, error) {
		body, err := s.c.gw.GetBytes(ctx, "/api/admin/sms-jobs/pending", params.query())
		if err != nil {
			return models.Page[models.SmsJob]{}, nil, err
		}
		page, err := models.DecodePage[models.SmsJob](body)
		if err != nil {
			return models.Page[models.SmsJob]{}, nil, err
		}
		tags := []cache.Tag{cache.ListTag(cache.KindSmsJob)}
		for _, job := range page.Items {
			tags = append(tags, cache.IDTag(cache.KindSmsJob, job.ID))
		}
		return page, tags, nil
	})
}

type ApproveSmsJobRequest struct {
	Approved bool   `json:"approved"`
	Message  string `json:"message,omitempty"`
}

func (s *AdminService) ApproveSmsJob(ctx context.Context, id string, req ApproveSmsJobRequest) (models.SmsJob, error) {
	var job models.SmsJob
	err := s.c.gw.DoJSON(ctx, http.MethodPost, "/api/admin/sms-jobs/"+id+"/approve", nil, req, &job)
	return job, s.c.invalidate(err,
		cache.IDTag(cache.KindSmsJob, id),
		cache.ListTag(cache.KindSmsJob),
		cache.ListTag(cache.KindDashboard))
}

func (s *AdminService) ListSmsPackages(ctx context.Context, params ListParams) (models.Page[models.SmsPackage], error) {
	params = params.withDefaults()
	key := cache.Key("getSmsPackages", params)
	return runQuery(ctx, s.c, key, func(ctx context.Context) (models.Page[models.SmsPackage], []cache.Tag, error) {
		body, err := s.c.gw.GetBytes(ctx, "/api/admin/sms-packages", params.query())
		if err != nil {
			return models.Page[models.SmsPackage]{}, nil, err
		}
		page, err := models.DecodePage[models.SmsPackage](body)
		if err != nil {
			return models.Page[models.SmsPackage]{}, nil, err
		}
		tags := []cache.Tag{cache.ListTag(cache.KindSmsPackage)}
		for _, p := range page.Items {
			tags = append(tags, cache.IDTag(cache.KindSmsPackage, p.ID))
		}
		return page, tags, nil
	})
}

type SmsPackageRequest struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	SmsCount int64   `json:"smsCount"`
}

func (s *AdminService) CreateSmsPackage(ctx context.Context, req SmsPackageRequest) (models.SmsPackage, error) {
	var pkg models.SmsPackage
	err := s.c.gw.DoJSON(ctx, http.MethodPost, "/api/admin/sms-packages", nil, req, &pkg)
	return pkg, s.c.invalidate(err, cache.ListTag(cache.KindSmsPackage))
}

func (s *AdminService) UpdateSmsPackage(ctx context.Context, id string, req SmsPackageRequest) (models.SmsPackage, error) {
	var pkg models.SmsPackage
	err := s.c.gw.DoJSON(ctx, http.MethodPut, "/api/admin/sms-packages/"+id, nil, req, &pkg)
	return pkg, s.c.invalidate(err,
		cache.IDTag(cache.KindSmsPackage, id),
		cache.ListTag(cache.KindSmsPackage))
}

func (s *AdminService) DeleteSmsPackage(ctx context.Context, id string) error {
	err := s.c.gw.DoJSON(ctx, http.MethodDelete, "/api/admin/sms-packages/"+id, nil, nil, nil)
	return s.c.invalidate(err,
		cache.IDTag(cache.KindSmsPackage, id),
		cache.ListTag(cache.KindSmsPackage))
}
