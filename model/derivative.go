package model

// OutputFormat describes one desired output of a translation job.
type OutputFormat struct {
	// requested output type, e.g. "svf", "svf2", "thumbnail"
	Type string `json:"type"`
	// requested views for viewable outputs, "2d" and/or "3d"
	Views []string `json:"views,omitempty"`
	// format-specific advanced options passed through verbatim
	Advanced map[string]any `json:"advanced,omitempty"`
}

// JobPayload is the body of a translation job submission.
type JobPayload struct {
	Input  JobInput  `json:"input"`
	Output JobOutput `json:"output"`
}

// JobInput identifies the design to translate.
type JobInput struct {
	URN string `json:"urn"`
	// set for compressed inputs, e.g. a ZIP archive
	CompressedURN bool `json:"compressedUrn,omitempty"`
	// entry filename inside a compressed input
	RootFilename string `json:"rootFilename,omitempty"`
}

// JobOutput lists the requested output formats and destination region.
type JobOutput struct {
	Formats     []OutputFormat  `json:"formats"`
	Destination *JobDestination `json:"destination,omitempty"`
}

// JobDestination selects the region derivatives are stored in.
type JobDestination struct {
	Region Region `json:"region"`
}

// Job is the response to a translation job submission.
type Job struct {
	Result       string         `json:"result"`
	URN          string         `json:"urn"`
	AcceptedJobs map[string]any `json:"acceptedJobs,omitempty"`
}

// Manifest describes the outputs produced for a source design.
type Manifest struct {
	Type         string       `json:"type"`
	HasThumbnail string       `json:"hasThumbnail"`
	Status       string       `json:"status"`
	Progress     string       `json:"progress"`
	Region       Region       `json:"region"`
	URN          string       `json:"urn"`
	Version      string       `json:"version,omitempty"`
	Derivatives  []Derivative `json:"derivatives,omitempty"`
}

// Derivative is one output artifact in a manifest, possibly nested.
type Derivative struct {
	Name         string       `json:"name,omitempty"`
	HasThumbnail string       `json:"hasThumbnail,omitempty"`
	Status       string       `json:"status,omitempty"`
	Progress     string       `json:"progress,omitempty"`
	OutputType   string       `json:"outputType,omitempty"`
	GUID         string       `json:"guid,omitempty"`
	Type         string       `json:"type,omitempty"`
	Role         string       `json:"role,omitempty"`
	MIME         string       `json:"mime,omitempty"`
	URN          string       `json:"urn,omitempty"`
	Size         int64        `json:"size,omitempty"`
	Children     []Derivative `json:"children,omitempty"`
}

// ViewableMetadata identifies one viewable (model view) of a design.
type ViewableMetadata struct {
	Name string `json:"name"`
	Role string `json:"role"`
	GUID string `json:"guid"`
}

// MetadataViews lists the viewables available for a design.
type MetadataViews struct {
	Data struct {
		Type     string             `json:"type"`
		Metadata []ViewableMetadata `json:"metadata"`
	} `json:"data"`
}

// TreeNode is one node of a viewable's object hierarchy.
type TreeNode struct {
	ObjectID int64      `json:"objectid"`
	Name     string     `json:"name"`
	Objects  []TreeNode `json:"objects,omitempty"`
}

// ViewableTree is the object hierarchy of a single viewable.
type ViewableTree struct {
	Data struct {
		Type    string     `json:"type"`
		Objects []TreeNode `json:"objects"`
	} `json:"data"`
}

// PropertyEntry holds the properties of one object in a viewable.
type PropertyEntry struct {
	ObjectID   int64          `json:"objectid"`
	Name       string         `json:"name"`
	ExternalID string         `json:"externalId,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// ViewableProperties lists the properties of all objects in a viewable.
type ViewableProperties struct {
	Data struct {
		Type       string          `json:"type"`
		Collection []PropertyEntry `json:"collection"`
	} `json:"data"`
}

// FormatMap maps each supported target format to the source formats it can
// be produced from.
type FormatMap struct {
	Formats map[string][]string `json:"formats"`
}
