package fs

import (
	"fmt"

	"github.com/sourcegraph/pummel/types"
)

const IndexName = "index.json"

// FilenameFormatString is the format string used by GenerateFilename
// to create a filename.
const FilenameFormatString = "%d-report.json"

// GenerateFilename returns a filename ideal for storing a report
// batch on a storage provider that relies on the filename for
// retrieval sorted by date/timeframe. It returns a string pointer to
// be used by the AWS SDK.
func GenerateFilename() *string {
	s := fmt.Sprintf(FilenameFormatString, types.Timestamp())
	return &s
}
