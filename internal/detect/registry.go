package detect

import (
	"fmt"

	"github.com/raaihank/datascrub/internal/recognize"
)

// Names of the available detectors, in the order Build instantiates them.
const (
	NameEmail      = "email"
	NamePhone      = "phone"
	NameName       = "name"
	NameCreditCard = "credit_card"
)

// Build instantiates detectors from a list of names. The literal "all"
// enables every detector. The recognizer is only consulted when the name
// detector is enabled; pass nil to use the built-in rules engine.
func Build(names []string, recognizer recognize.Recognizer) ([]Detector, error) {
	enabled := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "all" {
			enabled[NameEmail] = true
			enabled[NamePhone] = true
			enabled[NameName] = true
			enabled[NameCreditCard] = true
			continue
		}
		switch name {
		case NameEmail, NamePhone, NameName, NameCreditCard:
			enabled[name] = true
		default:
			return nil, fmt.Errorf("unknown detector: %s", name)
		}
	}

	var detectors []Detector
	if enabled[NameEmail] {
		detectors = append(detectors, NewEmailDetector())
	}
	if enabled[NamePhone] {
		detectors = append(detectors, NewPhoneDetector())
	}
	if enabled[NameName] {
		if recognizer == nil {
			recognizer = recognize.NewRulesRecognizer()
		}
		detectors = append(detectors, NewNameDetector(recognizer))
	}
	if enabled[NameCreditCard] {
		detectors = append(detectors, NewCreditCardDetector())
	}

	return detectors, nil
}
