package keypage

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

var _encoder = base64.RawURLEncoding

// Cursor is the decoded form of a pagination token: the identity of the
// paginated query, the identity of the sort, an optional fingerprint of the
// query arguments and the boundary values of the last row of the previous
// page. Nil Values mean an empty boundary (start of the dataset).
//
// A cursor is an immutable, request-scoped value object. Clients only ever
// see its encoded form and must treat it as an implementation detail.
type Cursor struct {
	QueryID         string
	SortID          string
	ArgsFingerprint string
	Values          []any
}

// IsEmpty returns true if the cursor carries no boundary values.
func (c Cursor) IsEmpty() bool {
	return len(c.Values) == 0
}

// wireCursor is the serialized shape of a Cursor. Short keys keep the token
// compact; the token is structurally opaque, not encrypted.
type wireCursor struct {
	QueryID         string `json:"q"`
	SortID          string `json:"s"`
	ArgsFingerprint string `json:"a,omitempty"`
	Values          []any  `json:"v,omitempty"`
}

// EncodeCursor serializes a cursor into a compact, URL-safe opaque string.
func EncodeCursor(c Cursor) string {
	jTok, err := json.Marshal(wireCursor{
		QueryID:         c.QueryID,
		SortID:          c.SortID,
		ArgsFingerprint: c.ArgsFingerprint,
		Values:          c.Values,
	})
	if err != nil {
		panic(fmt.Errorf("cannot marshal cursor value: %w", err))
	}

	var buf bytes.Buffer
	if err = json.Compact(&buf, jTok); err != nil {
		panic(fmt.Errorf("cannot compact cursor value: %w", err))
	}

	return _encoder.EncodeToString(buf.Bytes())
}

// DecodeCursor attempts to parse an encoded token into a *Cursor. An empty
// token decodes to nil without error. Any parse or structural failure is an
// *InvalidCursorError carrying the raw token and the offending field.
func DecodeCursor(token string) (*Cursor, error) {
	if len(token) == 0 {
		return nil, nil
	}

	jsonData, err := _encoder.DecodeString(token)
	if err != nil {
		e := newInvalidCursorError(token, "malformed token")
		e.cause = fmt.Errorf("failed to decode base64 encoded cursor: %w", err)
		return nil, e
	}

	var payload any
	if err = json.Unmarshal(jsonData, &payload); err != nil {
		e := newInvalidCursorError(token, "malformed token")
		e.cause = fmt.Errorf("failed to unmarshal json encoded cursor: %w", err)
		return nil, e
	}

	fields, ok := payload.(map[string]any)
	if !ok {
		e := newInvalidCursorError(token, "token payload is not an object")
		e.Got = payload
		return nil, e
	}

	cursor := &Cursor{}

	if cursor.QueryID, ok = fields["q"].(string); !ok {
		return nil, errCursorField(token, "q", fields["q"])
	}
	if cursor.SortID, ok = fields["s"].(string); !ok {
		return nil, errCursorField(token, "s", fields["s"])
	}
	if rawArgs, present := fields["a"]; present {
		if cursor.ArgsFingerprint, ok = rawArgs.(string); !ok {
			return nil, errCursorField(token, "a", rawArgs)
		}
	}
	if rawValues, present := fields["v"]; present {
		if cursor.Values, ok = rawValues.([]any); !ok {
			return nil, errCursorField(token, "v", rawValues)
		}
	}

	return cursor, nil
}

func errCursorField(token, field string, value any) *InvalidCursorError {
	e := newInvalidCursorError(token, fmt.Sprintf("token field '%s' has unexpected shape", field))
	e.Got = value
	return e
}
