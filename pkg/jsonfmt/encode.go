package jsonfmt

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
)

// Encode serialises a value produced by Parse. An empty indent yields the
// compact form; otherwise every nesting level is prefixed by indent.
func Encode(value any, indent string) string {
	var buf bytes.Buffer
	encodeValue(&buf, value, indent, 0)
	return buf.String()
}

func encodeValue(buf *bytes.Buffer, value any, indent string, depth int) {
	switch typed := value.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if typed {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case float64:
		encodeNumber(buf, typed)
	case string:
		encodeString(buf, typed)
	case *Object:
		encodeObject(buf, typed, indent, depth)
	case []any:
		encodeArray(buf, typed, indent, depth)
	default:
		// Values outside the Parse tree are rendered through encoding/json.
		data, err := json.Marshal(typed)
		if err != nil {
			buf.WriteString("null")
			return
		}
		buf.Write(data)
	}
}

func encodeObject(buf *bytes.Buffer, obj *Object, indent string, depth int) {
	buf.WriteByte('{')
	if obj.Len() == 0 {
		buf.WriteByte('}')
		return
	}

	separator := ":"
	if indent != "" {
		separator = ": "
	}
	for idx, key := range obj.keys {
		if idx > 0 {
			buf.WriteByte(',')
		}
		newline(buf, indent, depth+1)
		encodeString(buf, key)
		buf.WriteString(separator)
		encodeValue(buf, obj.values[key], indent, depth+1)
	}
	newline(buf, indent, depth)
	buf.WriteByte('}')
}

func encodeArray(buf *bytes.Buffer, items []any, indent string, depth int) {
	buf.WriteByte('[')
	if len(items) == 0 {
		buf.WriteByte(']')
		return
	}

	for idx, item := range items {
		if idx > 0 {
			buf.WriteByte(',')
		}
		newline(buf, indent, depth+1)
		encodeValue(buf, item, indent, depth+1)
	}
	newline(buf, indent, depth)
	buf.WriteByte(']')
}

func newline(buf *bytes.Buffer, indent string, depth int) {
	if indent == "" {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(indent, depth))
}

// encodeNumber follows ECMAScript Number::toString, which encoding/json
// already implements for finite floats. JSON.stringify prints non-finite
// numbers as null and drops the sign of negative zero.
func encodeNumber(buf *bytes.Buffer, f float64) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		buf.WriteString("null")
		return
	}
	if f == 0 {
		buf.WriteByte('0')
		return
	}
	data, err := json.Marshal(f)
	if err != nil {
		buf.WriteString("null")
		return
	}
	buf.Write(data)
}

const lowerHex = "0123456789abcdef"

// encodeString uses the JSON.stringify escape set: no HTML escaping and no
// escaping of U+2028/U+2029, unlike encoding/json.
func encodeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				buf.WriteString(`\u00`)
				buf.WriteByte(lowerHex[r>>4])
				buf.WriteByte(lowerHex[r&0xF])
				continue
			}
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
}
