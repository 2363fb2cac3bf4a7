package sanitize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Record is a JSON object that preserves member order through a
// decode/encode round trip. encoding/json's map type randomizes key order,
// so records decode through the token stream instead.
//
// Values inside a Record are string, json.Number, bool, nil, Record, or
// []any. Numbers stay json.Number so non-string leaves re-encode
// byte-identically.
type Record []Member

// Member is one key/value pair of a Record.
type Member struct {
	Key   string
	Value any
}

// Get returns the value for key and whether it exists.
func (r Record) Get(key string) (any, bool) {
	for _, m := range r {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// MarshalJSON writes the members in their original order without HTML
// escaping.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeValue(&buf, m.Key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeValue(&buf, m.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving member order.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return err
	}
	rec, ok := v.(Record)
	if !ok {
		return fmt.Errorf("expected JSON object, got %T", v)
	}
	if err := expectEOF(dec); err != nil {
		return err
	}
	*r = rec
	return nil
}

// expectEOF fails unless the decoder has consumed all of its input. The
// token stream stops after one complete value, so trailing bytes would
// otherwise pass silently.
func expectEOF(dec *json.Decoder) error {
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("invalid JSON: unexpected data after top-level value")
	}
	return nil
}

func encodeValue(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode appends a newline; drop it so members stay on one line.
	if b := buf.Bytes(); len(b) > 0 && b[len(b)-1] == '\n' {
		buf.Truncate(len(b) - 1)
	}
	return nil
}

// decodeValue consumes one JSON value from the token stream.
func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeFromToken(dec, tok)
}

func decodeFromToken(dec *json.Decoder, tok json.Token) (any, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var rec Record
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("invalid object key token %v", keyTok)
				}
				value, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				rec = append(rec, Member{Key: key, Value: value})
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			if rec == nil {
				rec = Record{}
			}
			return rec, nil
		case '[':
			arr := []any{}
			for dec.More() {
				value, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, value)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	default:
		// string, json.Number, bool, or nil
		return tok, nil
	}
}

// DecodeRecords parses data as a JSON array of objects.
func DecodeRecords(data []byte) ([]Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, describeSyntaxError(data, err)
	}
	if err := expectEOF(dec); err != nil {
		return nil, err
	}

	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("JSON root must be an array at line 1, column 1")
	}

	records := make([]Record, 0, len(arr))
	for i, el := range arr {
		rec, ok := el.(Record)
		if !ok {
			return nil, fmt.Errorf("array element %d is not a JSON object", i)
		}
		records = append(records, rec)
	}
	return records, nil
}

// EncodeRecords renders records as a pretty-printed JSON array. HTML
// escaping is off so non-ASCII and markup characters survive untouched.
func EncodeRecords(records []Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// describeSyntaxError rewrites a decoder error with the 1-indexed line and
// column derived from its byte offset.
func describeSyntaxError(data []byte, err error) error {
	var syn *json.SyntaxError
	if !errors.As(err, &syn) {
		return fmt.Errorf("invalid JSON: %v", err)
	}

	line, col := 1, 1
	offset := int(syn.Offset)
	if offset > len(data) {
		offset = len(data)
	}
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return fmt.Errorf("invalid JSON: %v at line %d, column %d", syn, line, col)
}
