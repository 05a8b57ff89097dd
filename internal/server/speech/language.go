// Package speech wraps the upstream speech-to-text and text-generation
// services behind two narrow adapters, plus the target-language type
// shared by both.
package speech

import "fmt"

// Target names the translation target. The zero value means "no
// translation": the transcript is presented as-is.
type Target struct {
	label string
}

// NoTranslation is the sentinel target for transcribe-only runs.
var NoTranslation = Target{}

// SupportedLanguages is the fixed allow-list offered to users, in
// presentation order.
var SupportedLanguages = []string{"Hindi", "Marathi", "Japanese", "Spanish", "French", "German"}

// ParseTarget validates label against the allow-list. An empty label
// selects NoTranslation.
func ParseTarget(label string) (Target, error) {
	if label == "" {
		return NoTranslation, nil
	}
	for _, l := range SupportedLanguages {
		if l == label {
			return Target{label: label}, nil
		}
	}
	return Target{}, fmt.Errorf("unsupported target language %q", label)
}

// Translate reports whether a translation stage should run.
func (t Target) Translate() bool {
	return t.label != ""
}

// Label returns the natural-language name of the target language, or
// an empty string for NoTranslation.
func (t Target) Label() string {
	return t.label
}
