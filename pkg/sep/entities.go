package sep

// Entity records decoded from server responses. Optional wire fields are
// pointers; a missing or null key decodes to nil rather than failing.
// Records are reconstructed fresh from each response and never cached.

// Data product lifecycle statuses. The set of transient statuses is not
// exhaustively known to the client, so code must not treat this list as
// closed.
const (
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
)

// Workflow statuses. IsFinalStatus on WorkflowStatus is the authoritative
// terminal indicator, not these strings.
const (
	WorkflowStatusInProgress = "IN_PROGRESS"
	WorkflowStatusCompleted  = "COMPLETED"
	WorkflowStatusFailed     = "FAILED"
	WorkflowStatusError      = "ERROR"
)

// Workflow types reported by publish and delete status reads.
const (
	WorkflowTypePublish = "PUBLISH"
	WorkflowTypeDelete  = "DELETE"
)

// Domain is an organizational grouping of data products.
type Domain struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	Description          *string          `json:"description,omitempty"`
	SchemaLocation       *string          `json:"schemaLocation,omitempty"`
	CreatedAt            Time             `json:"createdAt"`
	CreatedBy            string           `json:"createdBy"`
	UpdatedAt            *Time            `json:"updatedAt,omitempty"`
	UpdatedBy            *string          `json:"updatedBy,omitempty"`
	AssignedDataProducts []DataProductRef `json:"assignedDataProducts,omitempty"`
}

// DataProductRef is a reference to a data product assigned to a domain.
type DataProductRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DataProduct is a named, owned bundle of views and materialized views
// published as a discoverable unit.
type DataProduct struct {
	ID                     string             `json:"id"`
	Name                   string             `json:"name"`
	CatalogName            string             `json:"catalogName"`
	SchemaName             string             `json:"schemaName"`
	DataDomainID           string             `json:"dataDomainId"`
	Summary                string             `json:"summary"`
	Description            *string            `json:"description,omitempty"`
	Status                 string             `json:"status"`
	Views                  []View             `json:"views"`
	MaterializedViews      []MaterializedView `json:"materializedViews"`
	Owners                 []Owner            `json:"owners"`
	ProductOwners          []Owner            `json:"productOwners,omitempty"`
	RelevantLinks          []RelevantLink     `json:"relevantLinks"`
	CreatedAt              Time               `json:"createdAt"`
	CreatedBy              string             `json:"createdBy"`
	UpdatedAt              Time               `json:"updatedAt"`
	UpdatedBy              string             `json:"updatedBy"`
	PublishedAt            *Time              `json:"publishedAt,omitempty"`
	PublishedBy            *string            `json:"publishedBy,omitempty"`
	AccessMetadata         *AccessMetadata    `json:"accessMetadata,omitempty"`
	RatingsCount           int                `json:"ratingsCount"`
	BookmarkCount          int                `json:"bookmarkCount"`
	UserData               *UserData          `json:"userData,omitempty"`
	MatchesTrinoDefinition *bool              `json:"matchesTrinoDefinition,omitempty"`
}

// View is a query-defined virtual table exposed by a data product.
type View struct {
	Name                   string   `json:"name"`
	Description            *string  `json:"description,omitempty"`
	DefinitionQuery        string   `json:"definitionQuery"`
	Status                 string   `json:"status"`
	Columns                []Column `json:"columns"`
	MarkedForDeletion      bool     `json:"markedForDeletion"`
	CreatedAt              Time     `json:"createdAt"`
	CreatedBy              string   `json:"createdBy"`
	UpdatedAt              Time     `json:"updatedAt"`
	UpdatedBy              string   `json:"updatedBy"`
	PublishedAt            *Time    `json:"publishedAt,omitempty"`
	PublishedBy            *string  `json:"publishedBy,omitempty"`
	MatchesTrinoDefinition *bool    `json:"matchesTrinoDefinition,omitempty"`
}

// MaterializedView is a physically refreshed view. DefinitionProperties
// controls the server-side refresh schedule.
type MaterializedView struct {
	View
	DefinitionProperties MaterializedViewProperties `json:"definitionProperties"`
}

// MaterializedViewProperties holds the refresh scheduling properties of a
// materialized view. Keys are snake_case on the wire.
type MaterializedViewProperties struct {
	RefreshInterval string  `json:"refresh_interval"`
	GracePeriod     *string `json:"grace_period,omitempty"`
}

// Column describes one column of a view or materialized view. Type is a
// catalog type-system string such as "varchar" or "decimal(15,2)".
type Column struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Description *string `json:"description,omitempty"`
}

// Owner is a name/email pair. No uniqueness is enforced client-side.
type Owner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RelevantLink is an auxiliary documentation pointer on a data product.
type RelevantLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Tag is a server-assigned-id label attached to a data product. The id is
// required to delete a specific tag instance.
type Tag struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// SampleQuery is an example query surfaced to catalog browsers.
type SampleQuery struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Query       string `json:"query"`
}

// AccessMetadata records the most recent query against a data product.
type AccessMetadata struct {
	LastQueriedAt *Time   `json:"lastQueriedAt,omitempty"`
	LastQueriedBy *string `json:"lastQueriedBy,omitempty"`
}

// UserData carries the calling user's rating and bookmark state for a data
// product.
type UserData struct {
	Rating     float64 `json:"rating"`
	Bookmarked bool    `json:"bookmarked"`
}

// DataProductStatistics is read-only usage telemetry for a data product.
type DataProductStatistics struct {
	DataProductID       string `json:"dataProductId"`
	SevenDayQueryCount  int    `json:"sevenDayQueryCount"`
	ThirtyDayQueryCount int    `json:"thirtyDayQueryCount"`
	SevenDayUserCount   int    `json:"sevenDayUserCount"`
	ThirtyDayUserCount  int    `json:"thirtyDayUserCount"`
	UpdatedAt           Time   `json:"updatedAt"`
}

// WorkflowStatus is a point-in-time read of an asynchronous publish or delete
// workflow. IsFinalStatus is the authoritative terminal signal; callers must
// poll until it is true rather than matching status strings.
type WorkflowStatus struct {
	WorkflowType  string          `json:"workflowType"`
	Status        string          `json:"status"`
	Errors        []WorkflowError `json:"errors"`
	IsFinalStatus bool            `json:"isFinalStatus"`
}

// WorkflowError identifies one underlying catalog object that failed during a
// publish or delete workflow.
type WorkflowError struct {
	EntityType string `json:"entityType"`
	EntityName string `json:"entityName"`
	Message    string `json:"message"`
}

// MaterializedViewRefreshMetadata describes the refresh state of a
// materialized view. A view that has never refreshed yields a record with all
// fields absent.
type MaterializedViewRefreshMetadata struct {
	LastImport               *Time   `json:"lastImport,omitempty"`
	IncrementalColumn        *string `json:"incrementalColumn,omitempty"`
	RefreshInterval          *string `json:"refreshInterval,omitempty"`
	StorageSchema            *string `json:"storageSchema,omitempty"`
	EstimatedNextRefreshTime *Time   `json:"estimatedNextRefreshTime,omitempty"`
}

// DataProductSearchResult is the slim record returned by product search.
type DataProductSearchResult struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	CatalogName    string   `json:"catalogName"`
	SchemaName     string   `json:"schemaName"`
	DataDomainID   string   `json:"dataDomainId"`
	Summary        string   `json:"summary"`
	Description    *string  `json:"description,omitempty"`
	Status         string   `json:"status"`
	CreatedBy      string   `json:"createdBy"`
	UpdatedAt      *Time    `json:"updatedAt,omitempty"`
	PublishedAt    *Time    `json:"publishedAt,omitempty"`
	RatingsAverage *float64 `json:"ratingsAverage,omitempty"`
	RatingsCount   int      `json:"ratingsCount"`
	BookmarkCount  int      `json:"bookmarkCount"`
	LastQueriedAt  *Time    `json:"lastQueriedAt,omitempty"`
	LastQueriedBy  *string  `json:"lastQueriedBy,omitempty"`
}
