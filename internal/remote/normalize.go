package remote

import (
	"encoding/json"
	"fmt"
	"io"
)

// Upstream deployments disagree about envelopes: some return a bare JSON
// array, some wrap it as {"data": [...]}, and some proxy layers wrap that
// again as {"data": {"data": [...]}}. normalizeList peels envelopes until it
// reaches the array so callers only ever see the list itself.
func normalizeList(body []byte) (json.RawMessage, error) {
	current := json.RawMessage(body)
	for depth := 0; depth < 3; depth++ {
		trimmed := firstByte(current)
		switch trimmed {
		case '[':
			return current, nil
		case '{':
			var envelope struct {
				Data json.RawMessage `json:"data"`
			}
			if err := json.Unmarshal(current, &envelope); err != nil {
				return nil, err
			}
			if envelope.Data == nil {
				return nil, fmt.Errorf("envelope has no data field")
			}
			current = envelope.Data
		default:
			return nil, fmt.Errorf("unexpected payload shape")
		}
	}
	return nil, fmt.Errorf("envelope nesting too deep")
}

// normalizeObject unwraps a single {"data": {...}} envelope when present and
// otherwise returns the body unchanged.
func normalizeObject(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Data != nil && firstByte(envelope.Data) == '{' {
		return envelope.Data, nil
	}
	return body, nil
}

func firstByte(raw []byte) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}
