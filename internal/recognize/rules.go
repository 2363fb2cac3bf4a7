package recognize

import (
	"strings"
	"unicode"
)

// Scores assigned by the rules engine. Gazetteer hits are stronger evidence
// than capitalization alone; lowercase gazetteer hits are the weakest
// signal that still clears the detection bar.
const (
	scoreGazetteer   = 0.9
	scoreCapitalized = 0.85
	scoreLowercase   = 0.6
)

// RulesRecognizer is the default person recognizer: a capitalization and
// gazetteer heuristic with no model dependency. It finds runs of up to
// three consecutive name-like tokens and reports each run as one span.
type RulesRecognizer struct {
	givenNames map[string]struct{}
	surnames   map[string]struct{}
	stopwords  map[string]struct{}
}

// NewRulesRecognizer creates a rules-based person recognizer.
func NewRulesRecognizer() *RulesRecognizer {
	return &RulesRecognizer{
		givenNames: toSet(givenNameList),
		surnames:   toSet(surnameList),
		stopwords:  toSet(stopwordList),
	}
}

type token struct {
	start, end int
	text       string
}

// Recognize returns spans covering runs of name-like tokens.
func (r *RulesRecognizer) Recognize(text string) []Span {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	tokens := tokenize(text)

	var spans []Span
	i := 0
	for i < len(tokens) {
		score, ok := r.tokenScore(tokens[i].text)
		if !ok {
			i++
			continue
		}

		// Extend the run over adjacent name-like tokens, capped at three
		// (given, middle, family). Adjacency means nothing but spaces
		// between the tokens.
		j := i
		minScore := score
		for j+1 < len(tokens) && j-i < 2 {
			next := tokens[j+1]
			if !onlySpacesBetween(text, tokens[j].end, next.start) {
				break
			}
			s, ok := r.tokenScore(next.text)
			if !ok {
				break
			}
			if s < minScore {
				minScore = s
			}
			j++
		}

		spans = append(spans, Span{Start: tokens[i].start, End: tokens[j].end, Score: minScore})
		i = j + 1
	}

	return spans
}

// tokenScore classifies a single token as name-like and returns the rule
// score, or false when the token cannot be part of a person name.
func (r *RulesRecognizer) tokenScore(word string) (float64, bool) {
	if len(word) < 2 || !isAlphabetic(word) {
		return 0, false
	}

	lower := strings.ToLower(word)
	if _, stop := r.stopwords[lower]; stop {
		return 0, false
	}

	_, given := r.givenNames[lower]
	_, surname := r.surnames[lower]
	inGazetteer := given || surname

	switch {
	case inGazetteer && isCapitalizedOrUpper(word):
		return scoreGazetteer, true
	case inGazetteer:
		return scoreLowercase, true
	case isCapitalizedOrUpper(word):
		return scoreCapitalized, true
	default:
		return 0, false
	}
}

func tokenize(text string) []token {
	var tokens []token
	start := -1
	for i, r := range text {
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, token{start: start, end: i, text: text[start:i]})
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, token{start: start, end: len(text), text: text[start:]})
	}
	return tokens
}

func onlySpacesBetween(text string, from, to int) bool {
	if to <= from {
		return false
	}
	for _, r := range text[from:to] {
		if r != ' ' {
			return false
		}
	}
	return true
}

func isAlphabetic(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// isCapitalizedOrUpper accepts Title and UPPER tokens but not lowercase or
// mIxEd ones.
func isCapitalizedOrUpper(s string) bool {
	runes := []rune(s)
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	rest := runes[1:]
	allUpper, allLower := true, true
	for _, r := range rest {
		if !unicode.IsUpper(r) {
			allUpper = false
		}
		if !unicode.IsLower(r) {
			allLower = false
		}
	}
	return allUpper || allLower
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
