package pummel

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/sourcegraph/pummel/types"
)

// LoadConfig builds a Pummel from the JSON configuration in r. The
// storage and notifier entries each carry a "type" discriminator
// naming their backend; the rest of the entry is handed to that
// backend's own decoder. Run settings from the file act as a base
// that CLI arguments may override.
func LoadConfig(r io.Reader) (Pummel, error) {
	var raw struct {
		Settings  types.Settings    `json:"settings"`
		Storage   json.RawMessage   `json:"storage,omitempty"`
		Notifiers []json.RawMessage `json:"notifiers,omitempty"`
	}

	var p Pummel
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return p, err
	}
	p.Settings = raw.Settings

	if raw.Storage != nil {
		typeName, err := pluginType(raw.Storage)
		if err != nil {
			return p, err
		}
		p.Storage, err = storageDecode(typeName, raw.Storage)
		if err != nil {
			return p, err
		}
	}

	for _, rawNotifier := range raw.Notifiers {
		typeName, err := pluginType(rawNotifier)
		if err != nil {
			return p, err
		}
		notifier, err := notifierDecode(typeName, rawNotifier)
		if err != nil {
			return p, err
		}
		p.Notifiers = append(p.Notifiers, notifier)
	}

	return p, nil
}

func pluginType(config json.RawMessage) (string, error) {
	var t struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(config, &t); err != nil {
		return "", err
	}
	if t.Type == "" {
		return "", errors.New("missing plugin type")
	}
	return t.Type, nil
}
