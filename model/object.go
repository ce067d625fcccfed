package model

// ObjectRecord describes a single object stored in a bucket.
type ObjectRecord struct {
	// key of the bucket holding the object
	BucketKey string `json:"bucketKey"`
	// name of the object, unique within its bucket
	ObjectKey string `json:"objectKey"`
	// full URN of the object
	ObjectID string `json:"objectId"`
	// SHA-1 digest of the object content
	SHA1 string `json:"sha1,omitempty"`
	// content length in bytes
	Size int64 `json:"size"`
	// URL the object content can be downloaded from
	Location string `json:"location,omitempty"`
	// MIME type of the object content
	ContentType string `json:"contentType,omitempty"`
}

// ObjectPage is one page of an object listing. Next, when non-empty, is the
// URL of the following page.
type ObjectPage struct {
	Items []ObjectRecord `json:"items"`
	Next  string         `json:"next,omitempty"`
}
