// Package replace generates consistent fake values for detected PII.
//
// A Replacer owns the consistency caches for one sanitization run: the
// same original value always maps to the same fake value, and first/last
// name mappings are shared across standalone and full-name replacements so
// "John" becomes the same fake first name wherever it appears.
package replace

import (
	"strings"
	"sync"
	"unicode"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/raaihank/datascrub/internal/detect"
	"github.com/raaihank/datascrub/internal/pii"
)

// redactedMarker replaces values of PII types without a generator. An
// unknown type never fails the run.
const redactedMarker = "[REDACTED]"

type cacheKey struct {
	value string
	typ   pii.Type
}

// Replacer generates fake PII values with referential integrity. Safe for
// concurrent use: the lookup-miss/generate/insert sequence runs under one
// lock so two first-sight lookups of the same value cannot race into
// different fakes.
type Replacer struct {
	mu    sync.Mutex
	faker *gofakeit.Faker

	// Primary cache: (original value, type) -> fake value. Entries are
	// never overwritten once populated.
	cache map[cacheKey]string

	// Cross-field name maps, keyed by lowercased originals and shared by
	// the first-name, last-name, and full-name generators.
	firstNames map[string]string
	lastNames  map[string]string
}

// New creates a Replacer. A non-zero seed makes the sequence of generated
// values reproducible; seed 0 draws from a random source.
func New(seed uint64) *Replacer {
	return &Replacer{
		faker:      gofakeit.New(seed),
		cache:      make(map[cacheKey]string),
		firstNames: make(map[string]string),
		lastNames:  make(map[string]string),
	}
}

// Replace returns the fake value for a detection.
func (r *Replacer) Replace(d pii.Detection) string {
	return r.GetOrCreateReplacement(d.Value, d.Type)
}

// GetOrCreateReplacement returns the cached fake for (original, t),
// generating and caching one on first sight.
func (r *Replacer) GetOrCreateReplacement(original string, t pii.Type) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := cacheKey{value: original, typ: t}
	if fake, ok := r.cache[key]; ok {
		return fake
	}

	var fake string
	switch t {
	case pii.TypeEmail:
		fake = r.faker.Email()
	case pii.TypePhone:
		fake = r.generatePhone(original)
	case pii.TypeFullName:
		fake = r.generateFullName(original)
	case pii.TypeFirstName:
		fake = preserveCase(original, r.firstNameFor(original))
	case pii.TypeLastName:
		fake = preserveCase(original, r.lastNameFor(original))
	case pii.TypeCreditCard:
		fake = r.generateCreditCard()
	default:
		fake = redactedMarker
	}

	r.cache[key] = fake
	return fake
}

// generatePhone produces a fake number restyled to mimic the separator
// pattern of the original. The style table is a deliberately simple
// heuristic, not a phone-format parser.
func (r *Replacer) generatePhone(original string) string {
	fake := r.faker.PhoneFormatted()

	switch {
	case strings.Contains(original, "+") && strings.Contains(original, "-"):
		// International dash style, e.g. +1-234-567-8900: keep whatever
		// the generator produced.
		return fake
	case strings.Contains(original, "(") && strings.Contains(original, ")"):
		if digits := digitsOf(fake); len(digits) >= 10 {
			return "(" + digits[0:3] + ") " + digits[3:6] + "-" + digits[6:10]
		}
	case strings.Contains(original, "-"):
		if digits := digitsOf(fake); len(digits) >= 10 {
			return digits[0:3] + "-" + digits[3:6] + "-" + digits[6:10]
		}
	case isAllDigits(original):
		digits := digitsOf(fake)
		for len(digits) < len(original) {
			digits += r.faker.DigitN(1)
		}
		return digits[:len(original)]
	}

	return fake
}

// generateFullName resolves each half against the shared name maps so a
// full name agrees with any standalone first/last replacements that came
// before or after it. Single-token input gets a whole fake name with no
// cross-field linkage.
func (r *Replacer) generateFullName(original string) string {
	words := strings.Fields(original)
	if len(words) < 2 {
		return preserveCase(original, r.faker.Name())
	}

	fakeFirst := r.firstNameFor(words[0])
	fakeLast := r.lastNameFor(words[len(words)-1])
	return preserveCase(original, fakeFirst+" "+fakeLast)
}

// firstNameFor returns the fake first name for the original, creating the
// mapping on first sight. Keys are case-insensitive. Callers must hold mu.
func (r *Replacer) firstNameFor(original string) string {
	key := strings.ToLower(original)
	if fake, ok := r.firstNames[key]; ok {
		return fake
	}
	fake := r.faker.FirstName()
	r.firstNames[key] = fake
	return fake
}

// lastNameFor is the last-name counterpart of firstNameFor.
func (r *Replacer) lastNameFor(original string) string {
	key := strings.ToLower(original)
	if fake, ok := r.lastNames[key]; ok {
		return fake
	}
	fake := r.faker.LastName()
	r.lastNames[key] = fake
	return fake
}

// generateCreditCard returns a card number that passes the Luhn checksum.
// The generator is expected to emit valid numbers already; the check-digit
// repair is there so the guarantee does not rest on it.
func (r *Replacer) generateCreditCard() string {
	number := r.faker.CreditCardNumber(nil)
	if detect.LuhnValid(number) {
		return number
	}

	prefix := number[:len(number)-1]
	for d := byte('0'); d <= '9'; d++ {
		if candidate := prefix + string(d); detect.LuhnValid(candidate) {
			return candidate
		}
	}
	return number
}

// preserveCase maps the fake onto the original's case pattern: all-upper
// originals uppercase the fake, all-lower originals lowercase it, anything
// else keeps the generator's title casing.
func preserveCase(original, fake string) string {
	switch {
	case isUpper(original):
		return strings.ToUpper(fake)
	case isLower(original):
		return strings.ToLower(fake)
	default:
		return fake
	}
}

func isUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

func isLower(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsUpper(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
