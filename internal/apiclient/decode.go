package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"

	apierrors "github.com/yukikurage/taskboard/internal/errors"
)

// rawPayload in a key list means "the payload itself".
const rawPayload = ""

// Envelope priority lists, tried in order.
var (
	boardEnvelope  = []string{"boards", "items", "data"}
	taskEnvelope   = []string{"data", "tasks", rawPayload}
	listEnvelope   = []string{"data"}
	userEnvelope   = []string{"items", "data", rawPayload}
	detailEnvelope = []string{"data", rawPayload}
)

// selectEnvelope returns the value of the first key in keys that is present
// and non-null in payload.
func selectEnvelope(payload []byte, keys []string) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(payload)

	var fields map[string]json.RawMessage
	isObject := len(trimmed) > 0 && trimmed[0] == '{' && json.Unmarshal(trimmed, &fields) == nil

	for _, key := range keys {
		if key == rawPayload {
			return json.RawMessage(trimmed), nil
		}
		if !isObject {
			continue
		}
		if value, ok := fields[key]; ok && !isNull(value) {
			return value, nil
		}
	}

	return nil, apierrors.Malformed(fmt.Sprintf("response has none of the fields %q", keys), nil)
}

// decodeList decodes a list found under the first matching envelope key.
// Anything that is not a JSON array is a MalformedResponse.
func decodeList[T any](payload []byte, keys []string) ([]T, error) {
	raw, err := selectEnvelope(payload, keys)
	if err != nil {
		return nil, err
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, apierrors.Malformed("expected a list payload", nil)
	}

	items := []T{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, apierrors.Malformed("failed to decode list payload", err)
	}
	return items, nil
}

// decodeObject decodes a single record found under the first matching key.
func decodeObject[T any](payload []byte, keys []string) (T, error) {
	var out T

	raw, err := selectEnvelope(payload, keys)
	if err != nil {
		return out, err
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return out, apierrors.Malformed("expected an object payload", nil)
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, apierrors.Malformed("failed to decode object payload", err)
	}
	return out, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// confirmation extracts the {message} body of write endpoints.
func confirmation(payload []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return body.Message
}
