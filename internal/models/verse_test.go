package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSelection() Selection {
	return Selection{
		Character: "hero",
		Location:  "castle",
		Event:     "battle",
		Emotion:   "joy",
		Language:  LanguageEnglish,
	}
}

func TestSelectionValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(s *Selection)
		wantField   string
		wantMessage string
	}{
		{name: "valid preset emotion", mutate: func(_ *Selection) {}},
		{
			name:   "valid custom emotion only",
			mutate: func(s *Selection) { s.Emotion = ""; s.CustomEmotion = "bittersweet longing" },
		},
		{
			name:   "both emotions present",
			mutate: func(s *Selection) { s.CustomEmotion = "wistful" },
		},
		{
			name:        "missing character",
			mutate:      func(s *Selection) { s.Character = "" },
			wantField:   "character",
			wantMessage: MsgMissingFields,
		},
		{
			name:        "missing location",
			mutate:      func(s *Selection) { s.Location = "" },
			wantField:   "location",
			wantMessage: MsgMissingFields,
		},
		{
			name:        "whitespace event",
			mutate:      func(s *Selection) { s.Event = "   " },
			wantField:   "event",
			wantMessage: MsgMissingFields,
		},
		{
			name:        "missing language",
			mutate:      func(s *Selection) { s.Language = "" },
			wantField:   "language",
			wantMessage: MsgMissingFields,
		},
		{
			name:        "no emotion at all",
			mutate:      func(s *Selection) { s.Emotion = "" },
			wantField:   "emotion",
			wantMessage: MsgMissingEmotion,
		},
		{
			name:        "whitespace custom emotion only",
			mutate:      func(s *Selection) { s.Emotion = ""; s.CustomEmotion = " \t" },
			wantField:   "emotion",
			wantMessage: MsgMissingEmotion,
		},
		{
			name:        "unsupported language",
			mutate:      func(s *Selection) { s.Language = "latin" },
			wantField:   "language",
			wantMessage: MsgUnsupportedLanguage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := validSelection()
			tt.mutate(&sel)

			err := sel.Validate()
			if tt.wantMessage == "" {
				assert.NoError(t, err)
				return
			}

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.wantField, vErr.Field)
			assert.Equal(t, tt.wantMessage, vErr.Message)
		})
	}
}

func TestLanguageDefaultTitle(t *testing.T) {
	assert.Equal(t, "Medieval Verse", LanguageEnglish.DefaultTitle())
	assert.Equal(t, "古风诗篇", LanguageChinese.DefaultTitle())
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Field: "location", Message: MsgMissingFields}
	assert.Equal(t, "Missing required fields (location)", err.Error())
	assert.Equal(t, MsgMissingEmotion, (&ValidationError{Message: MsgMissingEmotion}).Error())
}
