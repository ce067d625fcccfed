package forge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/petrbroz/forge-go/httpclient"
	"github.com/petrbroz/forge-go/model"
)

// DefaultWebhooksBaseURL is the production endpoint of the Forge Webhooks
// service.
const DefaultWebhooksBaseURL = "https://developer.api.autodesk.com/webhooks/v1"

var (
	webhookReadScopes  = []model.Scope{model.ScopeBucketRead, model.ScopeDataRead}
	webhookWriteScopes = []model.Scope{model.ScopeBucketCreate, model.ScopeDataCreate, model.ScopeDataWrite}
)

// WebhooksClient is a client of the Forge Webhooks service for the data
// management event system.
type WebhooksClient struct {
	http httpclient.HTTPClient
}

// NewWebhooksClient creates a new webhooks client.
func NewWebhooksClient(provider TokenProvider, opts ...ClientOption) *WebhooksClient {
	cfg := newClientConfig(DefaultWebhooksBaseURL)
	for _, opt := range opts {
		opt(&cfg)
	}
	return &WebhooksClient{
		http: httpclient.NewHTTPClient(httpclient.Option{
			BaseURL:       cfg.baseURL,
			TokenProvider: provider,
			Timeout:       cfg.timeout,
		}),
	}
}

// GetWebhooks lists all webhooks registered for the data system, following
// pagination to exhaustion.
func (c *WebhooksClient) GetWebhooks(ctx context.Context, region model.Region) ([]model.Webhook, error) {
	header := regionHeader(region)
	var hooks []model.Webhook
	path := "/systems/data/hooks"
	for path != "" {
		var page model.WebhookPage
		data, err := c.http.GetData(ctx, path, webhookReadScopes, nil, header)
		if err != nil {
			return nil, err
		}
		if err := decodePage(data, &page); err != nil {
			return nil, err
		}
		hooks = append(hooks, page.Data...)
		path = page.Links.Next
	}
	return hooks, nil
}

// CreateWebhook registers a new webhook notifying the callback URL on the
// given event, e.g. "dm.version.added".
func (c *WebhooksClient) CreateWebhook(ctx context.Context, event string, req model.CreateWebhookRequest, region model.Region) error {
	if event == "" {
		return &model.ValidationError{Param: "event", Message: "must not be empty"}
	}
	if req.CallbackURL == "" {
		return &model.ValidationError{Param: "callbackUrl", Message: "must not be empty"}
	}
	if len(req.Scope) == 0 {
		return &model.ValidationError{Param: "scope", Message: "must not be empty"}
	}
	header := regionHeader(region)
	path := fmt.Sprintf("/systems/data/events/%s/hooks", url.PathEscape(event))
	return c.http.PostJSON(ctx, path, webhookWriteScopes, header, req, nil)
}

// DeleteWebhook removes a webhook by its ID.
func (c *WebhooksClient) DeleteWebhook(ctx context.Context, event, hookID string, region model.Region) error {
	if event == "" {
		return &model.ValidationError{Param: "event", Message: "must not be empty"}
	}
	if hookID == "" {
		return &model.ValidationError{Param: "hookID", Message: "must not be empty"}
	}
	header := regionHeader(region)
	path := fmt.Sprintf("/systems/data/events/%s/hooks/%s", url.PathEscape(event), url.PathEscape(hookID))
	return c.http.Delete(ctx, path, webhookWriteScopes, header)
}

func regionHeader(region model.Region) http.Header {
	if region == "" {
		return nil
	}
	header := http.Header{}
	header.Set("x-ads-region", string(region))
	return header
}

func decodePage(data []byte, page *model.WebhookPage) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, page); err != nil {
		return model.NewAPIError(httpclient.Unknown, err.Error(), err)
	}
	return nil
}
