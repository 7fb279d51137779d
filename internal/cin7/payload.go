package cin7

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"

	"github.com/DJCELL1/KP-Workshop-Tool/internal/service"
	"github.com/spf13/cast"
)

const defaultRejection = "Cin7 reported failure"

// wrapPayload returns body as a JSON array: sequences pass through and
// anything else becomes a one-element array.
func wrapPayload(body any) any {
	switch v := body.(type) {
	case nil:
		return []any{}
	case json.RawMessage:
		if trimmed := bytes.TrimSpace(v); len(trimmed) > 0 && trimmed[0] == '[' {
			return v
		}
		return []json.RawMessage{v}
	}

	switch reflect.ValueOf(body).Kind() {
	case reflect.Slice, reflect.Array:
		return body
	default:
		return []any{body}
	}
}

// interpretPutResponse reads Cin7's per-item verdicts. Only an array whose
// first element has success=false is a failure; anything else, including
// empty or malformed bodies, defers to the 2xx status code.
func interpretPutResponse(data []byte) service.PutResult {
	var items []map[string]any
	if err := json.Unmarshal(data, &items); err != nil || len(items) == 0 {
		return service.PutResult{Success: true}
	}

	first := items[0]
	if ok, isBool := first["success"].(bool); !isBool || ok {
		return service.PutResult{Success: true}
	}

	return service.PutResult{Error: joinErrors(first["errors"])}
}

func joinErrors(raw any) string {
	var parts []string
	switch v := raw.(type) {
	case string:
		parts = append(parts, v)
	case []any:
		for _, e := range v {
			if s, err := cast.ToStringE(e); err == nil && s != "" {
				parts = append(parts, s)
			}
		}
	}

	if len(parts) == 0 {
		return defaultRejection
	}
	return strings.Join(parts, "; ")
}
