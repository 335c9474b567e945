package pummel

import (
	"encoding/json"
	"fmt"

	"github.com/sourcegraph/pummel/storage/fs"
	"github.com/sourcegraph/pummel/storage/s3"
	"github.com/sourcegraph/pummel/storage/sql"
)

func storageDecode(typeName string, config json.RawMessage) (Storage, error) {
	switch typeName {
	case fs.Type:
		return fs.New(config)
	case s3.Type:
		return s3.New(config)
	case sql.Type:
		return sql.New(config)
	default:
		return nil, fmt.Errorf(errUnknownStorageType, typeName)
	}
}
