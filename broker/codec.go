package broker

import (
	"fmt"
	"time"

	"github.com/casualjim/eventtree/node"
	"github.com/casualjim/eventtree/types"
	"github.com/go-openapi/strfmt"
	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var envelopeJSON = []byte(`{"type":"event"}`)

// Envelope is an event as it travels over the wire.
type Envelope struct {
	Path      string          `json:"path"`
	Context   types.Values    `json:"context"`
	Options   types.Values    `json:"options"`
	Timestamp strfmt.DateTime `json:"timestamp,omitempty"`
}

// Event converts the envelope back into the event a handler would receive.
func (e Envelope) Event() node.Event {
	return node.Event{
		Path:    e.Path,
		Context: e.Context.OrEmpty(),
		Options: e.Options.OrEmpty(),
	}
}

// EncodeEvent renders ev as an envelope stamped with at.
func EncodeEvent(ev node.Event, at time.Time) ([]byte, error) {
	result := envelopeJSON

	var err error
	result, err = sjson.SetBytes(result, "path", ev.Path)
	if err != nil {
		return nil, err
	}

	contextBytes, err := json.Marshal(ev.Context.OrEmpty())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal context: %w", err)
	}
	result, err = sjson.SetRawBytes(result, "context", contextBytes)
	if err != nil {
		return nil, err
	}

	optionsBytes, err := json.Marshal(ev.Options.OrEmpty())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal options: %w", err)
	}
	result, err = sjson.SetRawBytes(result, "options", optionsBytes)
	if err != nil {
		return nil, err
	}

	if !at.IsZero() {
		result, err = sjson.SetBytes(result, "timestamp", strfmt.DateTime(at).String())
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// DecodeEnvelope parses an envelope produced by EncodeEvent. Missing context or
// options decode as empty values.
func DecodeEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if !gjson.ValidBytes(data) {
		return env, fmt.Errorf("invalid json: %s", data)
	}

	msgType := gjson.GetBytes(data, "type")
	if !msgType.Exists() || msgType.String() != "event" {
		return env, fmt.Errorf("missing or invalid type, expected 'event'")
	}

	path := gjson.GetBytes(data, "path")
	if !path.Exists() {
		return env, fmt.Errorf("missing required field 'path'")
	}
	env.Path = path.String()

	env.Context = types.Values{}
	if context := gjson.GetBytes(data, "context"); context.Exists() {
		if err := json.Unmarshal([]byte(context.Raw), &env.Context); err != nil {
			return env, fmt.Errorf("invalid context: %w", err)
		}
	}

	env.Options = types.Values{}
	if options := gjson.GetBytes(data, "options"); options.Exists() {
		if err := json.Unmarshal([]byte(options.Raw), &env.Options); err != nil {
			return env, fmt.Errorf("invalid options: %w", err)
		}
	}

	if timestamp := gjson.GetBytes(data, "timestamp"); timestamp.Exists() {
		if err := env.Timestamp.UnmarshalText([]byte(timestamp.String())); err != nil {
			return env, fmt.Errorf("invalid timestamp: %w", err)
		}
	}

	return env, nil
}
