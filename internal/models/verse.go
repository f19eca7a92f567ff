package models

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Language selects the prompt template and the default title
type Language string

const (
	LanguageEnglish Language = "english"
	LanguageChinese Language = "chinese"
)

// Default titles used when the title call yields nothing
const (
	DefaultTitleEnglish = "Medieval Verse"
	DefaultTitleChinese = "古风诗篇"
)

// Validation messages returned to callers
const (
	MsgMissingFields       = "Missing required fields"
	MsgMissingEmotion      = "Either emotion or customEmotion must be provided"
	MsgUnsupportedLanguage = "Unsupported language"
)

// IsValid reports whether the language is one of the supported ones
func (l Language) IsValid() bool {
	return l == LanguageEnglish || l == LanguageChinese
}

// DefaultTitle returns the fallback title for the language
func (l Language) DefaultTitle() string {
	return lo.Ternary(l == LanguageChinese, DefaultTitleChinese, DefaultTitleEnglish)
}

// Selection is the set of choices describing the poem to generate
type Selection struct {
	Character     string   `json:"character"`
	Location      string   `json:"location"`
	Event         string   `json:"event"`
	Emotion       string   `json:"emotion"`
	CustomEmotion string   `json:"customEmotion"`
	Language      Language `json:"language"`
}

// GeneratedResult is the assembled response for one request
type GeneratedResult struct {
	Poem  string `json:"poem"`
	Title string `json:"title"`
}

// ValidationError reports a malformed or incomplete Selection
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Field)
}

// Validate checks the Selection before any prompt is built.
// Whitespace-only values count as empty.
func (s Selection) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"character", s.Character},
		{"location", s.Location},
		{"event", s.Event},
		{"language", string(s.Language)},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return &ValidationError{Field: field.name, Message: MsgMissingFields}
		}
	}

	if strings.TrimSpace(s.Emotion) == "" && strings.TrimSpace(s.CustomEmotion) == "" {
		return &ValidationError{Field: "emotion", Message: MsgMissingEmotion}
	}

	if !s.Language.IsValid() {
		return &ValidationError{Field: "language", Message: MsgUnsupportedLanguage}
	}

	return nil
}
