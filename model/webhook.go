package model

// Webhook is a registered event subscription.
type Webhook struct {
	HookID      string            `json:"hookId"`
	TenantID    string            `json:"tenant,omitempty"`
	CallbackURL string            `json:"callbackUrl"`
	CreatedBy   string            `json:"createdBy,omitempty"`
	Event       string            `json:"event"`
	CreatedDate string            `json:"createdDate,omitempty"`
	System      string            `json:"system,omitempty"`
	Scope       map[string]string `json:"scope,omitempty"`
	Status      string            `json:"status,omitempty"`
	HookExpiry  string            `json:"hookExpiry,omitempty"`
}

// PageLinks carries the continuation link of a paginated webhook listing.
type PageLinks struct {
	Next string `json:"next,omitempty"`
}

// WebhookPage is one page of a webhook listing.
type WebhookPage struct {
	Data  []Webhook `json:"data"`
	Links PageLinks `json:"links"`
}

// CreateWebhookRequest is the payload for registering a new webhook.
type CreateWebhookRequest struct {
	// CallbackURL is where event notifications are delivered.
	CallbackURL string `json:"callbackUrl"`
	// Scope is the extent the event is monitored in, for example
	// {"folder": "urn:adsk.wipprod:fs.folder:co...."}.
	Scope map[string]string `json:"scope"`
	// Filter is an optional JsonPath expression filtering callbacks.
	Filter string `json:"filter,omitempty"`
	// HookExpiry is an optional ISO8601 time after which the hook is
	// deleted automatically. Empty means the hook never expires.
	HookExpiry string `json:"hookExpiry,omitempty"`
}
