package pummel

import (
	"encoding/json"
	"fmt"

	"github.com/sourcegraph/pummel/notifier/pushover"
	"github.com/sourcegraph/pummel/notifier/slack"
)

func notifierDecode(typeName string, config json.RawMessage) (Notifier, error) {
	switch typeName {
	case slack.Type:
		return slack.New(config)
	case pushover.Type:
		return pushover.New(config)
	default:
		return nil, fmt.Errorf(errUnknownNotifierType, typeName)
	}
}
