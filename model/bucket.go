package model

// Region identifies the geographical location of a bucket or derivative.
type Region string

const (
	RegionUS   Region = "US"
	RegionEMEA Region = "EMEA"
)

// DataRetention is a bucket data retention policy.
type DataRetention string

const (
	// RetentionTransient is cache-like storage for ephemeral results.
	// Objects older than 24 hours are removed automatically.
	RetentionTransient DataRetention = "transient"
	// RetentionTemporary keeps objects for 30 days.
	RetentionTemporary DataRetention = "temporary"
	// RetentionPersistent keeps objects until the owner deletes them.
	RetentionPersistent DataRetention = "persistent"
)

// BucketRecord is a single bucket entry as returned by the bucket listing.
type BucketRecord struct {
	// globally unique bucket name
	BucketKey string `json:"bucketKey"`
	// creation time as a unix timestamp in milliseconds
	CreatedDate int64 `json:"createdDate"`
	// data retention policy of the bucket
	PolicyKey DataRetention `json:"policyKey"`
}

// BucketPage is one page of a bucket listing. Next, when non-empty, is the
// URL of the following page.
type BucketPage struct {
	Items []BucketRecord `json:"items"`
	Next  string         `json:"next,omitempty"`
}

// BucketPermission describes access granted on a bucket to an application.
type BucketPermission struct {
	// AuthID is the application identifier the permission applies to.
	AuthID string `json:"authId"`
	// Access is the granted access level, "full" or "read".
	Access string `json:"access"`
}

// BucketDetails holds the full description of a bucket, available to the
// bucket owner only.
type BucketDetails struct {
	BucketKey   string             `json:"bucketKey"`
	BucketOwner string             `json:"bucketOwner"`
	CreatedDate int64              `json:"createdDate"`
	Permissions []BucketPermission `json:"permissions,omitempty"`
	PolicyKey   DataRetention      `json:"policyKey"`
}

// CreateBucketRequest is the payload for the bucket creation endpoint.
type CreateBucketRequest struct {
	BucketKey string        `json:"bucketKey"`
	PolicyKey DataRetention `json:"policyKey"`
}
