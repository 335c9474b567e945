package pushover

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gregdel/pushover"

	"github.com/sourcegraph/pummel/types"
)

const Type = "pushover"

type Notifier struct {
	Token     string `json:"token"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject,omitempty"`
}

func New(config json.RawMessage) (Notifier, error) {
	var notifier Notifier
	err := json.Unmarshal(config, &notifier)
	if strings.TrimSpace(notifier.Subject) == "" {
		notifier.Subject = "Pummel: Degraded Run"
	}
	return notifier, err
}

func (Notifier) Type() string {
	return Type
}

func (p Notifier) Notify(reports []types.Report) error {
	degraded := []types.Report{}
	for _, report := range reports {
		if report.Degraded() {
			degraded = append(degraded, report)
		}
	}

	if len(degraded) == 0 {
		return nil
	}

	app := pushover.New(p.Token)
	recipient := pushover.NewRecipient(p.Recipient)
	msg := pushover.NewMessageWithTitle(renderMessage(degraded), p.Subject)

	_, err := app.SendMessage(msg, recipient)
	return err
}

func renderMessage(degraded []types.Report) string {
	body := []string{"Pummel recorded failures in the following runs:", "\n\n"}
	for _, report := range degraded {
		for _, row := range report.Rows {
			if row.Class.Success() {
				continue
			}
			format := "run %d - %s: %d requests, mean %.2fms"
			body = append(body, fmt.Sprintf(format, report.Iteration, row.Class, row.Count, row.Mean))
		}
	}
	return strings.Join(body, "\n")
}
