package forge

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/petrbroz/forge-go/httpclient"
	"github.com/petrbroz/forge-go/model"
)

// DefaultDerivativeBaseURL is the production endpoint of the Forge Model
// Derivative service.
const DefaultDerivativeBaseURL = "https://developer.api.autodesk.com/modelderivative/v2"

var (
	derivativeReadScopes  = []model.Scope{model.ScopeDataRead, model.ScopeViewablesRead}
	derivativeWriteScopes = []model.Scope{model.ScopeDataCreate, model.ScopeDataWrite, model.ScopeDataRead}
)

// Urnify converts an object ID into the unpadded base64 form used as a
// Model Derivative URN.
func Urnify(objectID string) string {
	return base64.RawStdEncoding.EncodeToString([]byte(objectID))
}

// ModelDerivativeClient is a client of the Forge Model Derivative service.
type ModelDerivativeClient struct {
	http httpclient.HTTPClient
}

// NewModelDerivativeClient creates a new Model Derivative client.
func NewModelDerivativeClient(provider TokenProvider, opts ...ClientOption) *ModelDerivativeClient {
	cfg := newClientConfig(DefaultDerivativeBaseURL)
	for _, opt := range opts {
		opt(&cfg)
	}
	return &ModelDerivativeClient{
		http: httpclient.NewHTTPClient(httpclient.Option{
			BaseURL:       cfg.baseURL,
			TokenProvider: provider,
			Timeout:       cfg.timeout,
		}),
	}
}

// GetFormats returns the supported target formats, keyed by target format
// with a list of source formats each can be produced from.
func (c *ModelDerivativeClient) GetFormats(ctx context.Context) (model.FormatMap, error) {
	var formats model.FormatMap
	if err := c.http.GetJSON(ctx, "/designdata/formats", derivativeReadScopes, nil, &formats); err != nil {
		return model.FormatMap{}, err
	}
	return formats, nil
}

// JobOptions holds the optional parameters of SubmitJob.
type JobOptions struct {
	// OutputRegion selects where derivatives are stored. Default: US.
	OutputRegion model.Region
	// RootFilename is the starting file when the translated input is a ZIP
	// archive.
	RootFilename string
	// WorkflowID and WorkflowAttribute feed the Forge webhook workflow
	// mechanism.
	WorkflowID        string
	WorkflowAttribute any
	// Force requests re-translation of a model that was translated before.
	Force bool
}

type jobPayload struct {
	Input  model.JobInput  `json:"input"`
	Output model.JobOutput `json:"output"`
	Misc   map[string]any  `json:"misc,omitempty"`
}

// SubmitJob starts the translation of a design into the requested output
// formats. urn is the base64-encoded ID of the source object, typically
// produced with Urnify.
func (c *ModelDerivativeClient) SubmitJob(ctx context.Context, urn string, outputFormats []model.OutputFormat, opts JobOptions) (model.Job, error) {
	if urn == "" {
		return model.Job{}, &model.ValidationError{Param: "urn", Message: "must not be empty"}
	}
	if len(outputFormats) == 0 {
		return model.Job{}, &model.ValidationError{Param: "outputFormats", Message: "must not be empty"}
	}
	region := opts.OutputRegion
	if region == "" {
		region = model.RegionUS
	}
	payload := jobPayload{
		Input: model.JobInput{URN: urn},
		Output: model.JobOutput{
			Formats:     outputFormats,
			Destination: &model.JobDestination{Region: region},
		},
	}
	if opts.RootFilename != "" {
		payload.Input.CompressedURN = true
		payload.Input.RootFilename = opts.RootFilename
	}
	if opts.WorkflowID != "" {
		payload.Misc = map[string]any{"workflowId": opts.WorkflowID}
		if opts.WorkflowAttribute != nil {
			payload.Misc["workflowAttribute"] = opts.WorkflowAttribute
		}
	}
	header := http.Header{}
	if opts.Force {
		header.Set("x-ads-force", "true")
	}
	path := "/designdata/job"
	if region == model.RegionEMEA {
		path = "/regions/eu/designdata/job"
	}
	var job model.Job
	if err := c.http.PostJSON(ctx, path, derivativeWriteScopes, header, payload, &job); err != nil {
		return model.Job{}, err
	}
	return job, nil
}

// GetManifest returns the manifest describing all derivatives produced for
// a source design.
func (c *ModelDerivativeClient) GetManifest(ctx context.Context, urn string, region model.Region) (model.Manifest, error) {
	if urn == "" {
		return model.Manifest{}, &model.ValidationError{Param: "urn", Message: "must not be empty"}
	}
	var manifest model.Manifest
	path := designDataPath(region, "/designdata/%s/manifest", urn)
	if err := c.http.GetJSON(ctx, path, derivativeReadScopes, nil, &manifest); err != nil {
		return model.Manifest{}, err
	}
	return manifest, nil
}

// DeleteManifest deletes the manifest and all derivatives of a source
// design.
func (c *ModelDerivativeClient) DeleteManifest(ctx context.Context, urn string, region model.Region) error {
	if urn == "" {
		return &model.ValidationError{Param: "urn", Message: "must not be empty"}
	}
	path := designDataPath(region, "/designdata/%s/manifest", urn)
	return c.http.Delete(ctx, path, derivativeWriteScopes, nil)
}

// GetMetadata lists the model views (viewables) available for a design.
func (c *ModelDerivativeClient) GetMetadata(ctx context.Context, urn string, region model.Region) (model.MetadataViews, error) {
	if urn == "" {
		return model.MetadataViews{}, &model.ValidationError{Param: "urn", Message: "must not be empty"}
	}
	var views model.MetadataViews
	path := designDataPath(region, "/designdata/%s/metadata", urn)
	if err := c.http.GetJSON(ctx, path, derivativeReadScopes, nil, &views); err != nil {
		return model.MetadataViews{}, err
	}
	return views, nil
}

// GetViewableTree returns the object hierarchy of one viewable identified
// by its GUID from GetMetadata.
func (c *ModelDerivativeClient) GetViewableTree(ctx context.Context, urn, guid string, region model.Region) (model.ViewableTree, error) {
	if urn == "" {
		return model.ViewableTree{}, &model.ValidationError{Param: "urn", Message: "must not be empty"}
	}
	if guid == "" {
		return model.ViewableTree{}, &model.ValidationError{Param: "guid", Message: "must not be empty"}
	}
	var tree model.ViewableTree
	path := designDataPath(region, "/designdata/%s/metadata/%s", urn, guid)
	if err := c.http.GetJSON(ctx, path, derivativeReadScopes, nil, &tree); err != nil {
		return model.ViewableTree{}, err
	}
	return tree, nil
}

// GetViewableProperties returns the properties of all objects in one
// viewable.
func (c *ModelDerivativeClient) GetViewableProperties(ctx context.Context, urn, guid string, region model.Region) (model.ViewableProperties, error) {
	if urn == "" {
		return model.ViewableProperties{}, &model.ValidationError{Param: "urn", Message: "must not be empty"}
	}
	if guid == "" {
		return model.ViewableProperties{}, &model.ValidationError{Param: "guid", Message: "must not be empty"}
	}
	var props model.ViewableProperties
	path := designDataPath(region, "/designdata/%s/metadata/%s/properties", urn, guid)
	if err := c.http.GetJSON(ctx, path, derivativeReadScopes, nil, &props); err != nil {
		return model.ViewableProperties{}, err
	}
	return props, nil
}

// GetThumbnail downloads a thumbnail of the source design. Width and height
// are optional; acceptable values are 100, 200 and 400.
func (c *ModelDerivativeClient) GetThumbnail(ctx context.Context, urn string, width, height int, region model.Region) ([]byte, error) {
	if urn == "" {
		return nil, &model.ValidationError{Param: "urn", Message: "must not be empty"}
	}
	query := url.Values{}
	if width > 0 {
		query.Set("width", strconv.Itoa(width))
	}
	if height > 0 {
		query.Set("height", strconv.Itoa(height))
	}
	path := designDataPath(region, "/designdata/%s/thumbnail", urn)
	return c.http.GetData(ctx, path, derivativeReadScopes, query, nil)
}

// GetDerivativeInfo returns the size in bytes of one derivative, read from
// the Content-Length of a HEAD request.
func (c *ModelDerivativeClient) GetDerivativeInfo(ctx context.Context, urn, derivativeURN string, region model.Region) (int64, error) {
	if urn == "" {
		return 0, &model.ValidationError{Param: "urn", Message: "must not be empty"}
	}
	if derivativeURN == "" {
		return 0, &model.ValidationError{Param: "derivativeURN", Message: "must not be empty"}
	}
	path := designDataPath(region, "/designdata/%s/manifest/%s", urn, derivativeURN)
	header, err := c.http.Head(ctx, path, derivativeReadScopes)
	if err != nil {
		return 0, err
	}
	size, err := strconv.ParseInt(header.Get("Content-Length"), 10, 64)
	if err != nil {
		return 0, model.NewAPIError(httpclient.Unknown, "missing or malformed Content-Length", err)
	}
	return size, nil
}

// GetDerivative downloads a derivative generated from a source model. The
// derivative URN comes from the manifest. A byte range of length two may be
// passed to download a slice of the content.
func (c *ModelDerivativeClient) GetDerivative(ctx context.Context, urn, derivativeURN string, byteRange ...int64) ([]byte, error) {
	if urn == "" {
		return nil, &model.ValidationError{Param: "urn", Message: "must not be empty"}
	}
	if derivativeURN == "" {
		return nil, &model.ValidationError{Param: "derivativeURN", Message: "must not be empty"}
	}
	var header http.Header
	if len(byteRange) == 2 {
		header = http.Header{}
		header.Set("Range", fmt.Sprintf("bytes=%d-%d", byteRange[0], byteRange[1]))
	} else if len(byteRange) != 0 {
		return nil, &model.ValidationError{Param: "byteRange", Message: "must hold exactly a first and last byte offset"}
	}
	path := fmt.Sprintf("/designdata/%s/manifest/%s", url.PathEscape(urn), url.PathEscape(derivativeURN))
	return c.http.GetData(ctx, path, derivativeReadScopes, nil, header)
}

func designDataPath(region model.Region, format string, args ...string) string {
	escaped := make([]any, len(args))
	for i, a := range args {
		escaped[i] = url.PathEscape(a)
	}
	path := fmt.Sprintf(format, escaped...)
	if region == model.RegionEMEA {
		path = "/regions/eu" + path
	}
	return path
}
