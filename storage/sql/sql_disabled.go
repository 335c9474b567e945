//go:build !sql
// +build !sql

package sql

import (
	"encoding/json"
	"errors"

	"github.com/sourcegraph/pummel/types"
)

// Type should match the package name
const Type = "sql"

// Storage is a stub compiled when the sql build tag is absent, so
// the SQL drivers stay out of the default binary.
type Storage struct{}

var errStoreDisabled = errors.New("sql report store is disabled")

// New creates a new Storage instance based on json config
func New(_ json.RawMessage) (Storage, error) {
	return Storage{}, errStoreDisabled
}

// Type returns the storage driver package name
func (Storage) Type() string {
	return Type
}

// GetIndex returns the list of stored report batches.
func (Storage) GetIndex() (map[string]int64, error) {
	return nil, errStoreDisabled
}

// Fetch fetches the report batch with the given name.
func (Storage) Fetch(name string) ([]types.Report, error) {
	return nil, errStoreDisabled
}

// Store stores a session's reports in the database as one row.
func (Storage) Store(reports []types.Report) error {
	return errStoreDisabled
}

// Maintain deletes report rows that are older than the expiry.
func (Storage) Maintain() error {
	return errStoreDisabled
}
