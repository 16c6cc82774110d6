package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"sms-campaign-client/internal/cache"
	"sms-campaign-client/pkg/models"
)

type SmsService struct {
	c *Client
}

// smsJobTags: any send consumes credit and creates a job, so both the job
// listing and the dashboard figures go stale.
func smsJobTags() []cache.Tag {
	return []cache.Tag{
		cache.ListTag(cache.KindSmsJob),
		cache.ListTag(cache.KindDashboard),
	}
}

type SendSingleRequest struct {
	SenderID    string     `json:"senderId"`
	To          string     `json:"to"`
	Message     string     `json:"message"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
}

func (s *SmsService) SendSingle(ctx context.Context, req SendSingleRequest) (models.SmsJob, error) {
	var job models.SmsJob
	err := s.c.gw.DoJSON(ctx, http.MethodPost, "/api/sms/single", nil, req, &job)
	return job, s.c.invalidate(err, smsJobTags()...)
}

type SendGroupRequest struct {
	SenderID    string     `json:"senderId"`
	GroupID     string     `json:"groupId"`
	Message     string     `json:"message"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
}

func (s *SmsService) SendGroup(ctx context.Context, req SendGroupRequest) (models.SmsJob, error) {
	var job models.SmsJob
	err := s.c.gw.DoJSON(ctx, http.MethodPost, "/api/sms/group", nil, req, &job)
	return job, s.c.invalidate(err, smsJobTags()...)
}

// SendBulkFile submits a recipients file plus the message as multipart form
// data; the file travels under the key "file".
func (s *SmsService) SendBulkFile(ctx context.Context, senderID, message, fileName string, file io.Reader) (models.SmsJob, error) {
	fields := map[string]string{
		"senderId": senderID,
		"message":  message,
	}
	var job models.SmsJob
	err := s.c.gw.DoMultipart(ctx, http.MethodPost, "/api/sms/bulk", fields, "file", fileName, file, &job)
	return job, s.c.invalidate(err, smsJobTags()...)
}

func (s *SmsService) ListJobs(ctx context.Context, params ListParams) (models.Page[models.SmsJob], error) {
	params = params.withDefaults()
	key := cache.Key("getSmsJobs", params)
	return runQuery(ctx, s.c, key, func(ctx context.Context) (models.Page[models.SmsJob], []cache.Tag, error) {
		body, err := s.c.gw.GetBytes(ctx, "/api/sms/jobs", params.query())
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

func (s *SmsService) GetJob(ctx context.Context, id string) (models.SmsJob, error) {
	key := cache.Key("getSmsJob", id)
	return runQuery(ctx, s.c, key, func(ctx context.Context) (models.SmsJob, []cache.Tag, error) {
		var job models.SmsJob
		err := s.c.gw.DoJSON(ctx, http.MethodGet, "/api/sms/jobs/"+id, nil, nil, &job)
		if err != nil {
			return models.SmsJob{}, nil, err
		}
		return job, []cache.Tag{cache.IDTag(cache.KindSmsJob, id)}, nil
	})
}
