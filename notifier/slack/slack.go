package slack

import (
	"encoding/json"
	"fmt"
	"log"

	slack "github.com/ashwanthkumar/slack-go-webhook"

	"github.com/sourcegraph/pummel/types"
)

// Type should match the package name
const Type = "slack"

// Notifier posts a summary to a Slack webhook when a session records
// degraded runs.
type Notifier struct {
	Username string `json:"username"`
	Channel  string `json:"channel"`
	Webhook  string `json:"webhook"`
}

// New creates a new Notifier instance based on json config
func New(config json.RawMessage) (Notifier, error) {
	var notifier Notifier
	err := json.Unmarshal(config, &notifier)
	return notifier, err
}

// Type returns the notifier package name
func (Notifier) Type() string {
	return Type
}

// Notify implements notifier interface. A message is sent only for
// runs that recorded transport failures or non-2xx responses.
func (s Notifier) Notify(reports []types.Report) error {
	for _, report := range reports {
		if report.Degraded() {
			if err := s.Send(report); err != nil {
				return err
			}
		}
	}
	return nil
}

// Send posts one degraded run to the configured webhook.
func (s Notifier) Send(report types.Report) error {
	attach := slack.Attachment{}
	attach.AddField(slack.Field{Title: fmt.Sprintf("Run %d", report.Iteration), Value: report.URL})
	for _, row := range report.Rows {
		if row.Class.Success() {
			continue
		}
		attach.AddField(slack.Field{
			Title: row.Class.String(),
			Value: fmt.Sprintf("%d requests, mean %.2fms", row.Count, row.Mean),
		})
	}
	danger := "danger"
	attach.Color = &danger

	payload := slack.Payload{
		Text:        fmt.Sprintf("Degraded load run against %s", report.URL),
		Username:    s.Username,
		Channel:     s.Channel,
		Attachments: []slack.Attachment{attach},
	}

	errs := slack.Send(s.Webhook, "", payload)
	if len(errs) > 0 {
		log.Printf("ERROR: %s", errs)
		return types.Errors(errs)
	}
	return nil
}
