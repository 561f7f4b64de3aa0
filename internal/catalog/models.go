package catalog

import "time"

// FileRecord is one catalog row describing one indexed output file.
// Every field other than FilePath and CreatedAt is optional; a nil
// pointer maps to SQL NULL.
type FileRecord struct {
	ID               int64     `json:"id"`
	FilePath         string    `json:"filePath"`
	SpineVersion     *string   `json:"spineVersion,omitempty"`
	SpineProdVersion *string   `json:"spineProdVersion,omitempty"`
	ModelName        *string   `json:"modelName,omitempty"`
	DatasetName      *string   `json:"datasetName,omitempty"`
	Run              *int64    `json:"run,omitempty"`
	Subrun           *int64    `json:"subrun,omitempty"`
	EventMin         *int64    `json:"eventMin,omitempty"`
	EventMax         *int64    `json:"eventMax,omitempty"`
	NumEvents        *int64    `json:"numEvents,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// RowOutcome reports what an upsert did to the store.
type RowOutcome int

const (
	// OutcomeInserted means a new row was created.
	OutcomeInserted RowOutcome = iota
	// OutcomeUpdated means an existing row was overwritten in place.
	OutcomeUpdated
	// OutcomeSkipped means the row already existed and was left alone.
	OutcomeSkipped
)

func (o RowOutcome) String() string {
	switch o {
	case OutcomeInserted:
		return "inserted"
	case OutcomeUpdated:
		return "updated"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// QueryOptions selects and bounds a browse query. Empty filter values
// mean "no constraint"; multiple filters are conjunctive. Results are
// always ordered newest-first by created_at.
type QueryOptions struct {
	SpineVersion string
	ModelName    string
	DatasetName  string
	Limit        int
}

// DefaultQueryLimit caps result sets when the caller does not ask for a
// specific limit.
const DefaultQueryLimit = 50
