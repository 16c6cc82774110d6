package api

import (
	"context"
	"net/http"

	"sms-campaign-client/internal/cache"
	"sms-campaign-client/pkg/models"
)

type PaymentsService struct {
	c *Client
}

type InitializePaymentRequest struct {
	PackageID string  `json:"packageId,omitempty"`
	Amount    float64 `json:"amount,omitempty"`
}

// InitializePaymentResponse carries the external processor's redirect URL;
// the payment itself completes outside this client.
type InitializePaymentResponse struct {
	TransactionID    string `json:"transactionId"`
	AuthorizationURL string `json:"authorizationUrl"`
	Reference        string `json:"reference"`
}

func (s *PaymentsService) Initialize(ctx context.Context, req InitializePaymentRequest) (InitializePaymentResponse, error) {
	var resp InitializePaymentResponse
	err := s.c.gw.DoJSON(ctx, http.MethodPost, "/api/payments/initialize", nil, req, &resp)
	return resp, s.c.invalidate(err, cache.ListTag(cache.KindTransaction))
}

// Verify confirms a transaction after the processor redirect. Credit may have
// landed, so the profile and dashboard figures go stale along with it.
func (s *PaymentsService) Verify(ctx context.Context, id string) (models.Transaction, error) {
	var tx models.Transaction
	err := s.c.gw.DoJSON(ctx, http.MethodGet, "/api/payments/verify/"+id, nil, nil, &tx)
	return tx, s.c.invalidate(err,
		cache.IDTag(cache.KindTransaction, id),
		cache.ListTag(cache.KindTransaction),
		cache.ListTag(cache.KindProfile),
		cache.ListTag(cache.KindDashboard))
}

func (s *PaymentsService) ListTransactions(ctx context.Context, params ListParams) (models.Page[models.Transaction], error) {
	params = params.withDefaults()
	key := cache.Key("getTransactions", params)
	return runQuery(ctx, s.c, key, func(ctx context.Context) (models.Page[models.Transaction], []cache.Tag, error) {
		body, err := s.c.gw.GetBytes(ctx, "/api/payments/transactions", params.query())
		if err != nil {
			return models.Page[models.Transaction]{}, nil, err
		}
		page, err := models.DecodePage[models.Transaction](body)
		if err != nil {
			return models.Page[models.Transaction]{}, nil, err
		}
		tags := []cache.Tag{cache.ListTag(cache.KindTransaction)}
		for _, tx := range page.Items {
			tags = append(tags, cache.IDTag(cache.KindTransaction, tx.ID))
		}
		return page, tags, nil
	})
}

func (s *PaymentsService) GetTransaction(ctx context.Context, id string) (models.Transaction, error) {
	key := cache.Key("getTransaction", id)
	return runQuery(ctx, s.c, key, func(ctx context.Context) (models.Transaction, []cache.Tag, error) {
		var tx models.Transaction
		err := s.c.gw.DoJSON(ctx, http.MethodGet, "/api/payments/transactions/"+id, nil, nil, &tx)
		if err != nil {
			return models.Transaction{}, nil, err
		}
		return tx, []cache.Tag{cache.IDTag(cache.KindTransaction, id)}, nil
	})
}
