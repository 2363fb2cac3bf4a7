package replace

import (
	"regexp"
	"strings"
	"testing"

	"github.com/raaihank/datascrub/internal/detect"
	"github.com/raaihank/datascrub/internal/pii"
)

func TestReplacerConsistency(t *testing.T) {
	t.Run("SameValueSameFake", func(t *testing.T) {
		r := New(1)
		first := r.GetOrCreateReplacement("alice@example.com", pii.TypeEmail)
		second := r.GetOrCreateReplacement("alice@example.com", pii.TypeEmail)
		if first != second {
			t.Errorf("Same original produced different fakes: %q vs %q", first, second)
		}
	})

	t.Run("TypeIsPartOfTheKey", func(t *testing.T) {
		r := New(1)
		asFirst := r.GetOrCreateReplacement("Morgan", pii.TypeFirstName)
		r.GetOrCreateReplacement("Morgan", pii.TypeLastName)
		if again := r.GetOrCreateReplacement("Morgan", pii.TypeFirstName); again != asFirst {
			t.Errorf("Last-name lookup disturbed the first-name cache: %q vs %q", again, asFirst)
		}
	})

	t.Run("SeededDeterminism", func(t *testing.T) {
		a, b := New(42), New(42)
		originals := []string{"x@example.com", "y@example.com", "z@example.com"}
		for _, original := range originals {
			if fa, fb := a.GetOrCreateReplacement(original, pii.TypeEmail), b.GetOrCreateReplacement(original, pii.TypeEmail); fa != fb {
				t.Errorf("Seeded replacers diverged for %q: %q vs %q", original, fa, fb)
			}
		}
	})

	t.Run("ReplaceUsesDetectionValue", func(t *testing.T) {
		r := New(1)
		d := pii.Detection{Type: pii.TypeEmail, Value: "bob@example.com", Start: 0, End: 15}
		if r.Replace(d) != r.GetOrCreateReplacement("bob@example.com", pii.TypeEmail) {
			t.Error("Replace should hit the same cache entry as GetOrCreateReplacement")
		}
	})
}

func TestNameLinkage(t *testing.T) {
	t.Run("FullNameAgreesWithParts", func(t *testing.T) {
		r := New(7)
		fakeFirst := r.GetOrCreateReplacement("John", pii.TypeFirstName)
		fakeLast := r.GetOrCreateReplacement("Smith", pii.TypeLastName)
		fakeFull := r.GetOrCreateReplacement("John Smith", pii.TypeFullName)

		if fakeFull != fakeFirst+" "+fakeLast {
			t.Errorf("Full name %q does not agree with parts %q and %q", fakeFull, fakeFirst, fakeLast)
		}
	})

	t.Run("OrderIndependent", func(t *testing.T) {
		// Full name seen first, standalone first name afterwards.
		r := New(7)
		fakeFull := r.GetOrCreateReplacement("Jane Doe", pii.TypeFullName)
		fakeFirst := r.GetOrCreateReplacement("Jane", pii.TypeFirstName)

		if !strings.HasPrefix(fakeFull, fakeFirst+" ") {
			t.Errorf("Standalone first name %q should match the first half of %q", fakeFirst, fakeFull)
		}
	})

	t.Run("CaseInsensitiveLinkage", func(t *testing.T) {
		r := New(7)
		lower := r.GetOrCreateReplacement("john", pii.TypeFirstName)
		title := r.GetOrCreateReplacement("John", pii.TypeFirstName)

		if !strings.EqualFold(lower, title) {
			t.Errorf("Case variants should map to the same underlying name: %q vs %q", lower, title)
		}
	})

	t.Run("SingleTokenFullName", func(t *testing.T) {
		r := New(7)
		fake := r.GetOrCreateReplacement("Cher", pii.TypeFullName)
		if fake == "" || fake == "Cher" {
			t.Errorf("Expected a fake name, got %q", fake)
		}
	})
}

func TestCasePreservation(t *testing.T) {
	r := New(11)

	t.Run("AllUpper", func(t *testing.T) {
		fake := r.GetOrCreateReplacement("JOHN", pii.TypeFirstName)
		if fake != strings.ToUpper(fake) {
			t.Errorf("Expected all-upper fake, got %q", fake)
		}
	})

	t.Run("AllLower", func(t *testing.T) {
		fake := r.GetOrCreateReplacement("smith", pii.TypeLastName)
		if fake != strings.ToLower(fake) {
			t.Errorf("Expected all-lower fake, got %q", fake)
		}
	})

	t.Run("TitleCaseKept", func(t *testing.T) {
		fake := r.GetOrCreateReplacement("Emma", pii.TypeFirstName)
		if fake != strings.ToUpper(fake[:1])+fake[1:] {
			t.Errorf("Expected title-case fake, got %q", fake)
		}
	})
}

func TestPhoneStyles(t *testing.T) {
	r := New(3)

	t.Run("Parenthesized", func(t *testing.T) {
		fake := r.GetOrCreateReplacement("(555) 123-4567", pii.TypePhone)
		if !regexp.MustCompile(`^\(\d{3}\) \d{3}-\d{4}$`).MatchString(fake) {
			t.Errorf("Expected (AAA) PPP-LLLL style, got %q", fake)
		}
	})

	t.Run("Dashed", func(t *testing.T) {
		fake := r.GetOrCreateReplacement("555-123-4567", pii.TypePhone)
		if !regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`).MatchString(fake) {
			t.Errorf("Expected AAA-PPP-LLLL style, got %q", fake)
		}
	})

	t.Run("BareDigits", func(t *testing.T) {
		original := "5551234567"
		fake := r.GetOrCreateReplacement(original, pii.TypePhone)
		if len(fake) != len(original) {
			t.Errorf("Expected %d digits, got %q", len(original), fake)
		}
		if !regexp.MustCompile(`^\d+$`).MatchString(fake) {
			t.Errorf("Expected digits only, got %q", fake)
		}
	})
}

func TestCreditCardReplacement(t *testing.T) {
	r := New(5)

	for i := 0; i < 10; i++ {
		fake := r.GetOrCreateReplacement("4532015112830366", pii.TypeCreditCard)
		if !detect.LuhnValid(fake) {
			t.Fatalf("Fake card number %q fails the Luhn check", fake)
		}
		// Force a fresh generation each round.
		r = New(uint64(i + 100))
	}
}

func TestEmailReplacement(t *testing.T) {
	r := New(9)
	fake := r.GetOrCreateReplacement("alice@example.com", pii.TypeEmail)
	if fake == "alice@example.com" {
		t.Error("Fake email should differ from the original")
	}
	if !strings.Contains(fake, "@") {
		t.Errorf("Fake email %q has no @", fake)
	}
}

func TestUnknownTypeRedacted(t *testing.T) {
	r := New(1)
	if fake := r.GetOrCreateReplacement("123-45-6789", pii.Type("ssn")); fake != "[REDACTED]" {
		t.Errorf("Unknown type should be redacted, got %q", fake)
	}
}
