package sanitize

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestDecodeRecords(t *testing.T) {
	t.Run("KeyOrderPreserved", func(t *testing.T) {
		data := []byte(`[{"zebra": "one", "alpha": 2, "nested": {"b": true, "a": null}}]`)
		records, err := DecodeRecords(data)
		if err != nil {
			t.Fatalf("DecodeRecords failed: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("Expected 1 record, got %d", len(records))
		}

		keys := make([]string, 0, len(records[0]))
		for _, m := range records[0] {
			keys = append(keys, m.Key)
		}
		want := []string{"zebra", "alpha", "nested"}
		for i, key := range want {
			if keys[i] != key {
				t.Errorf("Key %d: expected %q, got %q", i, key, keys[i])
			}
		}

		nested, ok := records[0].Get("nested")
		if !ok {
			t.Fatal("Missing nested member")
		}
		rec, ok := nested.(Record)
		if !ok {
			t.Fatalf("Nested value should decode as Record, got %T", nested)
		}
		if rec[0].Key != "b" || rec[1].Key != "a" {
			t.Error("Nested key order not preserved")
		}
	})

	t.Run("NumbersStayVerbatim", func(t *testing.T) {
		records, err := DecodeRecords([]byte(`[{"int": 42, "float": 3.14, "big": 12345678901234567890}]`))
		if err != nil {
			t.Fatalf("DecodeRecords failed: %v", err)
		}
		v, _ := records[0].Get("float")
		num, ok := v.(json.Number)
		if !ok {
			t.Fatalf("Expected json.Number, got %T", v)
		}
		if num.String() != "3.14" {
			t.Errorf("Expected 3.14, got %s", num)
		}

		out, err := EncodeRecords(records)
		if err != nil {
			t.Fatalf("EncodeRecords failed: %v", err)
		}
		for _, literal := range []string{"42", "3.14", "12345678901234567890"} {
			if !bytes.Contains(out, []byte(literal)) {
				t.Errorf("Encoded output lost numeric literal %s", literal)
			}
		}
	})

	t.Run("RootMustBeArray", func(t *testing.T) {
		_, err := DecodeRecords([]byte(`{"a": 1}`))
		if err == nil || !strings.Contains(err.Error(), "JSON root must be an array") {
			t.Errorf("Expected root-must-be-array error, got %v", err)
		}
	})

	t.Run("ElementsMustBeObjects", func(t *testing.T) {
		_, err := DecodeRecords([]byte(`[1, 2]`))
		if err == nil || !strings.Contains(err.Error(), "element 0 is not a JSON object") {
			t.Errorf("Expected element-type error, got %v", err)
		}
	})

	t.Run("SyntaxErrorHasLineAndColumn", func(t *testing.T) {
		_, err := DecodeRecords([]byte("[\n  {\"a\": }\n]"))
		if err == nil {
			t.Fatal("Expected a syntax error")
		}
		msg := err.Error()
		if !strings.Contains(msg, "invalid JSON") || !strings.Contains(msg, "line 2") {
			t.Errorf("Expected line/column in error, got %q", msg)
		}
	})

	t.Run("TrailingDataRejected", func(t *testing.T) {
		_, err := DecodeRecords([]byte(`[{"email": "a@example.com"}] trailing garbage`))
		if err == nil || !strings.Contains(err.Error(), "invalid JSON") {
			t.Errorf("Expected trailing-data error, got %v", err)
		}
	})

	t.Run("TrailingJSONValueRejected", func(t *testing.T) {
		_, err := DecodeRecords([]byte(`[] []`))
		if err == nil || !strings.Contains(err.Error(), "invalid JSON") {
			t.Errorf("Expected trailing-data error, got %v", err)
		}
	})

	t.Run("EmptyArray", func(t *testing.T) {
		records, err := DecodeRecords([]byte(`[]`))
		if err != nil {
			t.Fatalf("DecodeRecords failed: %v", err)
		}
		if len(records) != 0 {
			t.Errorf("Expected no records, got %d", len(records))
		}
	})
}

func TestRecordUnmarshalJSON(t *testing.T) {
	t.Run("PreservesOrder", func(t *testing.T) {
		var rec Record
		if err := json.Unmarshal([]byte(`{"zebra": "one", "alpha": 2}`), &rec); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if len(rec) != 2 || rec[0].Key != "zebra" || rec[1].Key != "alpha" {
			t.Errorf("Key order not preserved: %+v", rec)
		}
	})

	t.Run("RejectsNonObject", func(t *testing.T) {
		var rec Record
		if err := json.Unmarshal([]byte(`[1, 2]`), &rec); err == nil {
			t.Error("Expected error for non-object input")
		}
	})

	t.Run("RejectsTrailingData", func(t *testing.T) {
		var rec Record
		if err := rec.UnmarshalJSON([]byte(`{"a": 1} extra`)); err == nil {
			t.Error("Expected error for trailing data")
		}
	})
}

func TestEncodeRecords(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		data := []byte(`[{"name": "test", "count": 7, "ok": false, "none": null, "list": ["a", 1]}]`)
		records, err := DecodeRecords(data)
		if err != nil {
			t.Fatalf("DecodeRecords failed: %v", err)
		}
		out, err := EncodeRecords(records)
		if err != nil {
			t.Fatalf("EncodeRecords failed: %v", err)
		}

		again, err := DecodeRecords(out)
		if err != nil {
			t.Fatalf("Re-decode failed: %v", err)
		}
		if len(again) != 1 || len(again[0]) != len(records[0]) {
			t.Fatal("Round trip changed the record shape")
		}
		for i := range records[0] {
			if again[0][i].Key != records[0][i].Key {
				t.Errorf("Key %d changed: %q vs %q", i, records[0][i].Key, again[0][i].Key)
			}
		}
	})

	t.Run("NoHTMLEscaping", func(t *testing.T) {
		records, err := DecodeRecords([]byte(`[{"markup": "<b>&</b>"}]`))
		if err != nil {
			t.Fatalf("DecodeRecords failed: %v", err)
		}
		out, err := EncodeRecords(records)
		if err != nil {
			t.Fatalf("EncodeRecords failed: %v", err)
		}
		if !bytes.Contains(out, []byte("<b>&</b>")) {
			t.Errorf("Markup was escaped: %s", out)
		}
	})

	t.Run("Indented", func(t *testing.T) {
		out, err := EncodeRecords([]Record{{Member{Key: "a", Value: "b"}}})
		if err != nil {
			t.Fatalf("EncodeRecords failed: %v", err)
		}
		if !bytes.Contains(out, []byte("\n  ")) {
			t.Errorf("Expected indented output, got %s", out)
		}
		if bytes.HasSuffix(out, []byte("\n")) {
			t.Error("Trailing newline should be trimmed")
		}
	})
}
