package forge

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"

	"github.com/petrbroz/forge-go/httpclient"
	"github.com/petrbroz/forge-go/model"
)

// DefaultOSSBaseURL is the production endpoint of the Forge Data Management
// Object Storage Service.
const DefaultOSSBaseURL = "https://developer.api.autodesk.com/oss/v2"

var (
	ossReadScopes   = []model.Scope{model.ScopeBucketRead, model.ScopeDataRead}
	ossWriteScopes  = []model.Scope{model.ScopeBucketCreate, model.ScopeDataCreate, model.ScopeDataWrite}
	ossDeleteScopes = []model.Scope{model.ScopeBucketDelete}
)

// bucket keys must be globally unique across all applications and regions
var bucketKeyPattern = regexp.MustCompile(`^[-_.a-z0-9]{3,128}$`)

// OSSClient is a client of the Forge object storage service. Every call is
// a fresh round trip; no resource state is cached locally.
type OSSClient struct {
	http httpclient.HTTPClient
}

// NewOSSClient creates a new object storage client. The provider is asked
// for a token before each request; use OAuthTokenProvider for app
// credentials or StaticTokenProvider for a pre-obtained token.
func NewOSSClient(provider TokenProvider, opts ...ClientOption) *OSSClient {
	cfg := newClientConfig(DefaultOSSBaseURL)
	for _, opt := range opts {
		opt(&cfg)
	}
	return &OSSClient{
		http: httpclient.NewHTTPClient(httpclient.Option{
			BaseURL:       cfg.baseURL,
			TokenProvider: provider,
			Timeout:       cfg.timeout,
		}),
	}
}

// ListBucketsQuery holds the optional parameters of GetBuckets.
type ListBucketsQuery struct {
	// Region where the buckets reside. Default: US.
	Region model.Region
	// Limit to the response size, 1-100. Default: 10.
	Limit int
	// StartAt is the bucket key to continue pagination from, typically the
	// last key of a preceding page.
	StartAt string
}

// GetBuckets lists buckets owned by the application, one page at a time.
// Callers follow the page's Next link themselves, or use GetAllBuckets.
func (c *OSSClient) GetBuckets(ctx context.Context, q ListBucketsQuery) (model.BucketPage, error) {
	query := url.Values{}
	if q.Region != "" {
		query.Set("region", string(q.Region))
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.StartAt != "" {
		query.Set("startAt", q.StartAt)
	}
	var page model.BucketPage
	if err := c.http.GetJSON(ctx, "/buckets", ossReadScopes, query, &page); err != nil {
		return model.BucketPage{}, err
	}
	return page, nil
}

// GetAllBuckets lists all buckets owned by the application, following
// pagination to exhaustion.
func (c *OSSClient) GetAllBuckets(ctx context.Context, region model.Region) ([]model.BucketRecord, error) {
	query := url.Values{}
	if region != "" {
		query.Set("region", string(region))
	}
	var items []model.BucketRecord
	path := "/buckets"
	for path != "" {
		var page model.BucketPage
		if err := c.http.GetJSON(ctx, path, ossReadScopes, query, &page); err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
		path = page.Next
		query = nil // the next link already carries its query string
	}
	return items, nil
}

// GetBucketDetails returns the bucket description. Only the bucket owner
// may call this; any other application receives a 403.
func (c *OSSClient) GetBucketDetails(ctx context.Context, bucketKey string) (model.BucketDetails, error) {
	if err := validateBucketKey(bucketKey); err != nil {
		return model.BucketDetails{}, err
	}
	var details model.BucketDetails
	err := c.http.GetJSON(ctx, fmt.Sprintf("/buckets/%s/details", url.PathEscape(bucketKey)), ossReadScopes, nil, &details)
	if err != nil {
		return model.BucketDetails{}, err
	}
	return details, nil
}

// CreateBucket creates a bucket owned by the application. The bucket key
// must be globally unique; it cannot be changed later.
func (c *OSSClient) CreateBucket(ctx context.Context, bucketKey string, retention model.DataRetention, region model.Region) (model.BucketDetails, error) {
	if err := validateBucketKey(bucketKey); err != nil {
		return model.BucketDetails{}, err
	}
	header := http.Header{}
	if region != "" {
		header.Set("x-ads-region", string(region))
	}
	body := model.CreateBucketRequest{
		BucketKey: bucketKey,
		PolicyKey: retention,
	}
	var details model.BucketDetails
	if err := c.http.PostJSON(ctx, "/buckets", ossWriteScopes, header, body, &details); err != nil {
		return model.BucketDetails{}, err
	}
	return details, nil
}

// DeleteBucket deletes a bucket owned by the application.
func (c *OSSClient) DeleteBucket(ctx context.Context, bucketKey string) error {
	if err := validateBucketKey(bucketKey); err != nil {
		return err
	}
	return c.http.Delete(ctx, fmt.Sprintf("/buckets/%s", url.PathEscape(bucketKey)), ossDeleteScopes, nil)
}

// ListObjectsQuery holds the optional parameters of GetObjects.
type ListObjectsQuery struct {
	// Limit to the response size, 1-100. Default: 10.
	Limit int
	// BeginsWith restricts results to objects whose key starts with it.
	BeginsWith string
	// StartAt is the position to continue pagination from.
	StartAt string
}

// GetObjects lists objects in a bucket, one page at a time. Only available
// to the bucket creator.
func (c *OSSClient) GetObjects(ctx context.Context, bucketKey string, q ListObjectsQuery) (model.ObjectPage, error) {
	if err := validateBucketKey(bucketKey); err != nil {
		return model.ObjectPage{}, err
	}
	query := url.Values{}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.BeginsWith != "" {
		query.Set("beginsWith", q.BeginsWith)
	}
	if q.StartAt != "" {
		query.Set("startAt", q.StartAt)
	}
	var page model.ObjectPage
	err := c.http.GetJSON(ctx, fmt.Sprintf("/buckets/%s/objects", url.PathEscape(bucketKey)), ossReadScopes, query, &page)
	if err != nil {
		return model.ObjectPage{}, err
	}
	return page, nil
}

// GetAllObjects lists all objects in a bucket, following pagination to
// exhaustion. beginsWith optionally restricts results by key prefix.
func (c *OSSClient) GetAllObjects(ctx context.Context, bucketKey, beginsWith string) ([]model.ObjectRecord, error) {
	if err := validateBucketKey(bucketKey); err != nil {
		return nil, err
	}
	query := url.Values{}
	if beginsWith != "" {
		query.Set("beginsWith", beginsWith)
	}
	var items []model.ObjectRecord
	path := fmt.Sprintf("/buckets/%s/objects", url.PathEscape(bucketKey))
	for path != "" {
		var page model.ObjectPage
		if err := c.http.GetJSON(ctx, path, ossReadScopes, query, &page); err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
		path = page.Next
		query = nil
	}
	return items, nil
}

// GetObjectDetails returns the metadata of a single object.
func (c *OSSClient) GetObjectDetails(ctx context.Context, bucketKey, objectKey string) (model.ObjectRecord, error) {
	if err := validateBucketKey(bucketKey); err != nil {
		return model.ObjectRecord{}, err
	}
	if err := validateObjectKey(objectKey); err != nil {
		return model.ObjectRecord{}, err
	}
	var record model.ObjectRecord
	path := fmt.Sprintf("/buckets/%s/objects/%s/details", url.PathEscape(bucketKey), url.PathEscape(objectKey))
	if err := c.http.GetJSON(ctx, path, ossReadScopes, nil, &record); err != nil {
		return model.ObjectRecord{}, err
	}
	return record, nil
}

// UploadObject uploads object content from the reader. If the object key
// already exists in the bucket its content is overwritten.
func (c *OSSClient) UploadObject(ctx context.Context, bucketKey, objectKey string, content io.Reader) (model.ObjectRecord, error) {
	if err := validateBucketKey(bucketKey); err != nil {
		return model.ObjectRecord{}, err
	}
	if err := validateObjectKey(objectKey); err != nil {
		return model.ObjectRecord{}, err
	}
	var record model.ObjectRecord
	path := fmt.Sprintf("/buckets/%s/objects/%s", url.PathEscape(bucketKey), url.PathEscape(objectKey))
	if err := c.http.PutData(ctx, path, ossWriteScopes, "application/octet-stream", content, &record); err != nil {
		return model.ObjectRecord{}, err
	}
	return record, nil
}

// DownloadObject downloads the content of an object.
func (c *OSSClient) DownloadObject(ctx context.Context, bucketKey, objectKey string) ([]byte, error) {
	if err := validateBucketKey(bucketKey); err != nil {
		return nil, err
	}
	if err := validateObjectKey(objectKey); err != nil {
		return nil, err
	}
	path := fmt.Sprintf("/buckets/%s/objects/%s", url.PathEscape(bucketKey), url.PathEscape(objectKey))
	return c.http.GetData(ctx, path, ossReadScopes, nil, nil)
}

// DeleteObject removes an object from a bucket.
func (c *OSSClient) DeleteObject(ctx context.Context, bucketKey, objectKey string) error {
	if err := validateBucketKey(bucketKey); err != nil {
		return err
	}
	if err := validateObjectKey(objectKey); err != nil {
		return err
	}
	path := fmt.Sprintf("/buckets/%s/objects/%s", url.PathEscape(bucketKey), url.PathEscape(objectKey))
	return c.http.Delete(ctx, path, ossDeleteScopes, nil)
}

func validateBucketKey(bucketKey string) error {
	if bucketKey == "" {
		return &model.ValidationError{Param: "bucketKey", Message: "must not be empty"}
	}
	if !bucketKeyPattern.MatchString(bucketKey) {
		return &model.ValidationError{Param: "bucketKey", Message: "must be 3-128 characters of -_.a-z0-9"}
	}
	return nil
}

func validateObjectKey(objectKey string) error {
	if objectKey == "" {
		return &model.ValidationError{Param: "objectKey", Message: "must not be empty"}
	}
	return nil
}
