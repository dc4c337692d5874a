package events

import "time"

// Dataset names an event stream, one per ingested dataset
type Dataset string

const (
	DatasetDemand     Dataset = "demand"
	DatasetInventory  Dataset = "inventory"
	DatasetSuppliers  Dataset = "suppliers"
	DatasetProduction Dataset = "production"
)

// Kind classifies what happened to a dataset
type Kind string

const (
	KindReplaced Kind = "replaced"
	KindCleared  Kind = "cleared"
)

// Event records one applied mutation. Token is an opaque change token:
// dependent computations cache derived results keyed by it and recompute
// only when the dataset's token moves.
type Event struct {
	Dataset  Dataset
	Kind     Kind
	Token    string
	Rows     int
	Version  int
	Occurred time.Time
}
