package types

import (
	"fmt"
	"strconv"
)

// Class is the bucket a single response is grouped under for
// statistics. Responses that carry a status line are classified by
// their numeric HTTP status code; requests that failed at the
// transport level (connection refused, DNS failure, reset mid-body)
// never produced a status code and fall into ErrClass.
type Class int

// ErrClass is the classification for transport-level failures.
const ErrClass Class = 0

// String returns the status code as text, or "ERR" for ErrClass.
func (c Class) String() string {
	if c == ErrClass {
		return "ERR"
	}
	return strconv.Itoa(int(c))
}

// Success reports whether c is a 2xx status classification.
func (c Class) Success() bool {
	return c >= 200 && c < 300
}

// MarshalText renders c the same way String does, so stored reports
// read "ERR" and "200" rather than raw integers.
func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses the representation produced by MarshalText.
func (c *Class) UnmarshalText(text []byte) error {
	if string(text) == "ERR" {
		*c = ErrClass
		return nil
	}
	n, err := strconv.Atoi(string(text))
	if err != nil {
		return fmt.Errorf("bad classification %q: %v", text, err)
	}
	*c = Class(n)
	return nil
}
