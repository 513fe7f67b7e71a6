package retort

import (
	"encoding/json"
	"strings"

	"github.com/zoobzio/sentinel"
)

// Most endpoints wrap their result in a {"payload": {...}} envelope; a few
// families return the fields at the top level. decodePayload and decodeFlat
// cover the two shapes. Both validate that the required fields of the
// target type are present before unmarshaling, so a 2xx response with a
// missing field classifies deterministically as ErrMalformedResponse
// instead of surfacing later as a zero value.

type envelope struct {
	Payload json.RawMessage `json:"payload"`
}

// decodePayload unmarshals the payload object of an enveloped response.
func decodePayload[T any](c *Client, req *Request, body []byte) (T, error) {
	var zero T
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		apiErr := c.apiError(req, ErrMalformedResponse, req.StatusCode, "body is not valid JSON")
		apiErr.Err = err
		return zero, apiErr
	}
	if len(env.Payload) == 0 {
		return zero, c.apiError(req, ErrMalformedResponse, req.StatusCode, "missing payload")
	}
	return decodeObject[T](c, req, env.Payload)
}

// decodeFlat unmarshals a response without the payload envelope.
func decodeFlat[T any](c *Client, req *Request, body []byte) (T, error) {
	return decodeObject[T](c, req, body)
}

func decodeObject[T any](c *Client, req *Request, data []byte) (T, error) {
	var zero T

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		apiErr := c.apiError(req, ErrMalformedResponse, req.StatusCode, "payload is not a JSON object")
		apiErr.Err = err
		return zero, apiErr
	}
	for _, name := range requiredJSONFields[T]() {
		if _, ok := fields[name]; !ok {
			return zero, c.apiError(req, ErrMalformedResponse, req.StatusCode, "missing required field "+name)
		}
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		apiErr := c.apiError(req, ErrMalformedResponse, req.StatusCode, "payload does not match expected shape")
		apiErr.Err = err
		return zero, apiErr
	}
	return out, nil
}

// requiredJSONFields lists the JSON names a payload for type T must carry,
// extracted from struct metadata via sentinel. Fields tagged omitempty are
// optional: a missing optional field defaults to its zero value to
// tolerate minor schema variation across job families.
func requiredJSONFields[T any]() []string {
	metadata := sentinel.Inspect[T]()

	var required []string
	for _, field := range metadata.Fields {
		name := jsonFieldName(field)
		if name == "-" {
			continue
		}
		if !hasOmitempty(field) {
			required = append(required, name)
		}
	}
	return required
}

// jsonFieldName extracts the JSON field name from metadata.
func jsonFieldName(field sentinel.FieldMetadata) string {
	if jsonTag, ok := field.Tags["json"]; ok {
		// Handle "name,omitempty" format
		parts := strings.Split(jsonTag, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0]
		}
	}

	// Default to lowercase field name
	return strings.ToLower(field.Name[:1]) + field.Name[1:]
}

// hasOmitempty checks if the json tag contains omitempty.
func hasOmitempty(field sentinel.FieldMetadata) bool {
	if jsonTag, ok := field.Tags["json"]; ok {
		return strings.Contains(jsonTag, "omitempty")
	}
	return false
}
