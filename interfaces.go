package pummel

import (
	"github.com/sourcegraph/pummel/types"
)

// Storage can archive the aggregate reports of a session.
type Storage interface {
	Type() string
	Store([]types.Report) error
}

// StorageReader can read reports back out of a Storage.
type StorageReader interface {
	// Fetch returns the contents of a report file.
	Fetch(reportFile string) ([]types.Report, error)
	// GetIndex returns the storage index, as a map where keys are
	// report filenames and values are the associated timestamps.
	GetIndex() (map[string]int64, error)
}

// Maintainer can maintain a store of reports by deleting old report
// files that are no longer needed.
type Maintainer interface {
	Maintain() error
}

// Notifier can notify ops of a degraded session, one where runs
// recorded transport failures or non-2xx responses.
type Notifier interface {
	Type() string
	Notify([]types.Report) error
}
