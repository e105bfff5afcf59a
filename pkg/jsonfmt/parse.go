package jsonfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalid reports text that is not a single well-formed JSON value.
var ErrInvalid = errors.New("jsonfmt: invalid JSON")

// Parse decodes raw into a tree of nil, bool, float64, string, []any and
// *Object values. Leading and trailing JSON whitespace is accepted; empty
// input and trailing content are rejected.
func Parse(raw string) (any, error) {
	data := []byte(raw)
	if !json.Valid(data) {
		return nil, ErrInvalid
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	value, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return value, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch typed := tok.(type) {
	case json.Delim:
		switch typed {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", rune(typed))
		}
	case json.Number:
		return parseNumber(typed)
	case string, bool, nil:
		return typed, nil
	default:
		return nil, fmt.Errorf("unexpected token %T", tok)
	}
}

func decodeObject(dec *json.Decoder) (*Object, error) {
	obj := NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %T", tok)
		}
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	items := []any{}
	for dec.More() {
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		items = append(items, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return items, nil
}

// parseNumber converts to a double the way JSON.parse does: values beyond the
// float64 range become infinities instead of failing.
func parseNumber(num json.Number) (float64, error) {
	f, err := strconv.ParseFloat(num.String(), 64)
	if err != nil && !math.IsInf(f, 0) {
		return 0, fmt.Errorf("number %q: %w", num.String(), err)
	}
	return f, nil
}
