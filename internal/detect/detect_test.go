package detect

import (
	"testing"

	"github.com/raaihank/datascrub/internal/pii"
	"github.com/raaihank/datascrub/internal/recognize"
)

func TestLuhnValid(t *testing.T) {
	t.Run("ValidNumbers", func(t *testing.T) {
		valid := []string{
			"4532015112830366", // Visa
			"378282246310005",  // Amex
			"5555555555554444", // Mastercard
		}
		for _, number := range valid {
			if !LuhnValid(number) {
				t.Errorf("Expected %s to pass the Luhn check", number)
			}
		}
	})

	t.Run("InvalidNumbers", func(t *testing.T) {
		invalid := []string{
			"4532015112830367", // off-by-one check digit
			"1234567890123456",
		}
		for _, number := range invalid {
			if LuhnValid(number) {
				t.Errorf("Expected %s to fail the Luhn check", number)
			}
		}
	})

	t.Run("NonDigitInput", func(t *testing.T) {
		if LuhnValid("4532a15112830366") {
			t.Error("Non-digit input should be invalid")
		}
		if LuhnValid("") {
			t.Error("Empty input should be invalid")
		}
	})
}

func TestEmailDetector(t *testing.T) {
	detector := NewEmailDetector()

	t.Run("SingleEmail", func(t *testing.T) {
		detections := detector.Detect("Contact john.doe@example.com today", "notes")
		if len(detections) != 1 {
			t.Fatalf("Expected 1 detection, got %d", len(detections))
		}
		d := detections[0]
		if d.Type != pii.TypeEmail {
			t.Errorf("Expected type %s, got %s", pii.TypeEmail, d.Type)
		}
		if d.Value != "john.doe@example.com" {
			t.Errorf("Unexpected value: %s", d.Value)
		}
		if !d.HasSpan() || d.Value != "Contact john.doe@example.com today"[d.Start:d.End] {
			t.Error("Span does not match the detected value")
		}
	})

	t.Run("MultipleEmails", func(t *testing.T) {
		detections := detector.Detect("a@example.com and b+tag@test.org", "notes")
		if len(detections) != 2 {
			t.Fatalf("Expected 2 detections, got %d", len(detections))
		}
		if detections[1].Value != "b+tag@test.org" {
			t.Errorf("Unexpected second value: %s", detections[1].Value)
		}
	})

	t.Run("NoEmail", func(t *testing.T) {
		if detections := detector.Detect("no addresses here", "notes"); len(detections) != 0 {
			t.Errorf("Expected no detections, got %d", len(detections))
		}
	})

	t.Run("EmptyText", func(t *testing.T) {
		if detections := detector.Detect("", "notes"); len(detections) != 0 {
			t.Errorf("Expected no detections for empty text, got %d", len(detections))
		}
	})
}

func TestPhoneDetector(t *testing.T) {
	detector := NewPhoneDetector()

	t.Run("ParenthesizedAreaCode", func(t *testing.T) {
		// Multiple patterns can match pieces of this number; exactly one
		// detection covering the full string must survive.
		text := "(555) 123-4567"
		detections := detector.Detect(text, "phone")
		if len(detections) != 1 {
			t.Fatalf("Expected 1 detection, got %d", len(detections))
		}
		if detections[0].Value != text {
			t.Errorf("Expected full number, got %q", detections[0].Value)
		}
	})

	t.Run("SeparatorStyles", func(t *testing.T) {
		detections := detector.Detect("Call 555-123-4567 or 555.123.4567", "notes")
		if len(detections) != 2 {
			t.Fatalf("Expected 2 detections, got %d", len(detections))
		}
		if detections[0].Value != "555-123-4567" || detections[1].Value != "555.123.4567" {
			t.Errorf("Unexpected values: %q, %q", detections[0].Value, detections[1].Value)
		}
	})

	t.Run("International", func(t *testing.T) {
		detections := detector.Detect("+1-234-567-8900", "phone")
		if len(detections) != 1 {
			t.Fatalf("Expected 1 detection, got %d", len(detections))
		}
		if detections[0].Value != "+1-234-567-8900" {
			t.Errorf("Expected full international number, got %q", detections[0].Value)
		}
	})

	t.Run("BareDigits", func(t *testing.T) {
		detections := detector.Detect("reach me at 5551234567", "notes")
		if len(detections) != 1 {
			t.Fatalf("Expected 1 detection, got %d", len(detections))
		}
	})

	t.Run("DigitCountFilter", func(t *testing.T) {
		// Nine digits is below the minimum; order numbers must not match.
		if detections := detector.Detect("order 123456789", "order"); len(detections) != 0 {
			t.Errorf("Expected no detections for 9 digits, got %d", len(detections))
		}
	})

	t.Run("SortedNonOverlapping", func(t *testing.T) {
		detections := detector.Detect("(555) 123-4567 then 555-987-6543", "notes")
		if len(detections) != 2 {
			t.Fatalf("Expected 2 detections, got %d", len(detections))
		}
		for i := 1; i < len(detections); i++ {
			if detections[i].Start < detections[i-1].End {
				t.Error("Detections overlap or are out of order")
			}
		}
	})
}

func TestCreditCardDetector(t *testing.T) {
	detector := NewCreditCardDetector()

	t.Run("PlainNumber", func(t *testing.T) {
		detections := detector.Detect("card 4532015112830366 on file", "payment")
		if len(detections) != 1 {
			t.Fatalf("Expected 1 detection, got %d", len(detections))
		}
		if detections[0].Type != pii.TypeCreditCard {
			t.Errorf("Expected type %s, got %s", pii.TypeCreditCard, detections[0].Type)
		}
	})

	t.Run("SeparatedGroups", func(t *testing.T) {
		detections := detector.Detect("4532 0151 1283 0366", "payment")
		if len(detections) != 1 {
			t.Fatalf("Expected 1 detection, got %d", len(detections))
		}
		if detections[0].Value != "4532 0151 1283 0366" {
			t.Errorf("Separators should be part of the value, got %q", detections[0].Value)
		}

		detections = detector.Detect("4532-0151-1283-0366", "payment")
		if len(detections) != 1 {
			t.Fatalf("Expected 1 detection for dashed groups, got %d", len(detections))
		}
	})

	t.Run("LuhnGate", func(t *testing.T) {
		// Looks like a card number but fails the checksum.
		if detections := detector.Detect("4532015112830367", "payment"); len(detections) != 0 {
			t.Errorf("Expected Luhn-invalid number to be ignored, got %d detections", len(detections))
		}
	})
}

func TestNameDetector(t *testing.T) {
	detector := NewNameDetector(recognize.NewRulesRecognizer())

	t.Run("FullNameByWordCount", func(t *testing.T) {
		detections := detector.Detect("John Smith", "customer")
		if len(detections) != 1 {
			t.Fatalf("Expected 1 detection, got %d", len(detections))
		}
		d := detections[0]
		if d.Type != pii.TypeFullName {
			t.Errorf("Expected type %s, got %s", pii.TypeFullName, d.Type)
		}
		if d.Value != "John Smith" {
			t.Errorf("Unexpected value: %q", d.Value)
		}
	})

	t.Run("FieldNameHints", func(t *testing.T) {
		cases := []struct {
			field string
			want  pii.Type
		}{
			{"first_name", pii.TypeFirstName},
			{"fname", pii.TypeFirstName},
			{"last_name", pii.TypeLastName},
			{"surname", pii.TypeLastName},
			{"name", pii.TypeFullName},
			{"Full-Name", pii.TypeFullName},
		}
		for _, c := range cases {
			detections := detector.Detect("Smith", c.field)
			if len(detections) != 1 {
				t.Fatalf("field %q: expected 1 detection, got %d", c.field, len(detections))
			}
			if detections[0].Type != c.want {
				t.Errorf("field %q: expected %s, got %s", c.field, c.want, detections[0].Type)
			}
		}
	})

	t.Run("SingleWordDefaultsToFirstName", func(t *testing.T) {
		detections := detector.Detect("Alice", "owner")
		if len(detections) != 1 {
			t.Fatalf("Expected 1 detection, got %d", len(detections))
		}
		if detections[0].Type != pii.TypeFirstName {
			t.Errorf("Expected %s, got %s", pii.TypeFirstName, detections[0].Type)
		}
	})

	t.Run("NoNames", func(t *testing.T) {
		if detections := detector.Detect("nothing noteworthy here", "notes"); len(detections) != 0 {
			t.Errorf("Expected no detections, got %d", len(detections))
		}
	})
}

func TestBuild(t *testing.T) {
	t.Run("All", func(t *testing.T) {
		detectors, err := Build([]string{"all"}, nil)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if len(detectors) != 4 {
			t.Errorf("Expected 4 detectors, got %d", len(detectors))
		}
	})

	t.Run("Subset", func(t *testing.T) {
		detectors, err := Build([]string{NameEmail, NamePhone}, nil)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if len(detectors) != 2 {
			t.Errorf("Expected 2 detectors, got %d", len(detectors))
		}
	})

	t.Run("Deduplicated", func(t *testing.T) {
		detectors, err := Build([]string{NameEmail, NameEmail, "all"}, nil)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if len(detectors) != 4 {
			t.Errorf("Expected 4 detectors, got %d", len(detectors))
		}
	})

	t.Run("UnknownName", func(t *testing.T) {
		if _, err := Build([]string{"dna"}, nil); err == nil {
			t.Error("Expected error for unknown detector name")
		}
	})
}
