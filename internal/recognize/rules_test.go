package recognize

import "testing"

func TestRulesRecognizer(t *testing.T) {
	recognizer := NewRulesRecognizer()

	t.Run("GazetteerFullName", func(t *testing.T) {
		spans := recognizer.Recognize("John Smith")
		if len(spans) != 1 {
			t.Fatalf("Expected 1 span, got %d", len(spans))
		}
		if spans[0].Start != 0 || spans[0].End != len("John Smith") {
			t.Errorf("Span should cover the full name, got [%d,%d)", spans[0].Start, spans[0].End)
		}
		if spans[0].Score != scoreGazetteer {
			t.Errorf("Expected score %f, got %f", scoreGazetteer, spans[0].Score)
		}
	})

	t.Run("StopwordsSuppressed", func(t *testing.T) {
		spans := recognizer.Recognize("Please call Jane Doe")
		if len(spans) != 1 {
			t.Fatalf("Expected 1 span, got %d", len(spans))
		}
		if got := "Please call Jane Doe"[spans[0].Start:spans[0].End]; got != "Jane Doe" {
			t.Errorf("Expected span over %q, got %q", "Jane Doe", got)
		}
	})

	t.Run("LowercaseGazetteerScoresLower", func(t *testing.T) {
		spans := recognizer.Recognize("spoke with john yesterday")
		if len(spans) != 1 {
			t.Fatalf("Expected 1 span, got %d", len(spans))
		}
		if got := "spoke with john yesterday"[spans[0].Start:spans[0].End]; got != "john" {
			t.Errorf("Expected span over %q, got %q", "john", got)
		}
		if spans[0].Score != scoreLowercase {
			t.Errorf("Expected score %f, got %f", scoreLowercase, spans[0].Score)
		}
	})

	t.Run("CapitalizedNonGazetteer", func(t *testing.T) {
		spans := recognizer.Recognize("met Zorblatt downtown")
		if len(spans) != 1 {
			t.Fatalf("Expected 1 span, got %d", len(spans))
		}
		if spans[0].Score != scoreCapitalized {
			t.Errorf("Expected score %f, got %f", scoreCapitalized, spans[0].Score)
		}
	})

	t.Run("RunCappedAtThreeTokens", func(t *testing.T) {
		text := "John Paul Smith Jones"
		spans := recognizer.Recognize(text)
		if len(spans) != 2 {
			t.Fatalf("Expected 2 spans, got %d", len(spans))
		}
		if got := text[spans[0].Start:spans[0].End]; got != "John Paul Smith" {
			t.Errorf("Expected first span over %q, got %q", "John Paul Smith", got)
		}
		if got := text[spans[1].Start:spans[1].End]; got != "Jones" {
			t.Errorf("Expected second span over %q, got %q", "Jones", got)
		}
	})

	t.Run("RunBreaksOnPunctuation", func(t *testing.T) {
		// A period between tokens breaks adjacency even for gazetteer hits.
		spans := recognizer.Recognize("Smith. Jones")
		if len(spans) != 2 {
			t.Fatalf("Expected 2 spans, got %d", len(spans))
		}
	})

	t.Run("NoNames", func(t *testing.T) {
		if spans := recognizer.Recognize("the sky looked cloudy today"); len(spans) != 0 {
			t.Errorf("Expected no spans, got %d", len(spans))
		}
		if spans := recognizer.Recognize("   "); len(spans) != 0 {
			t.Errorf("Expected no spans for blank text, got %d", len(spans))
		}
	})
}
