package prompt

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Conceptual-Machines/verse-api/internal/models"
	"github.com/samber/lo"
)

// Builder builds poem and title prompts from a Selection
type Builder struct {
	templates map[models.Language]templateSet
}

// NewPromptBuilder creates a new prompt builder
func NewPromptBuilder() (*Builder, error) {
	templates, err := NewPromptLoader().Load()
	if err != nil {
		return nil, err
	}
	return &Builder{templates: templates}, nil
}

// templateData is the set of phrases interpolated into every template
type templateData struct {
	Character string
	Location  string
	Event     string
	Emotion   string
}

// ResolveEmotion returns the emotion phrase for the selection: the trimmed
// custom emotion if present, else the preset phrase, else FallbackEmotion
func (b *Builder) ResolveEmotion(sel models.Selection) string {
	emotion, _ := lo.Coalesce(
		strings.TrimSpace(sel.CustomEmotion),
		emotionPhrases[sel.Emotion],
		FallbackEmotion,
	)
	return emotion
}

// BuildPoemPrompt builds the poem generation prompt
func (b *Builder) BuildPoemPrompt(sel models.Selection) (string, error) {
	set, err := b.templateSet(sel.Language)
	if err != nil {
		return "", err
	}
	return render(set.poem, b.data(sel, b.ResolveEmotion(sel)))
}

// BuildTitlePrompt builds the title generation prompt for an already resolved emotion
func (b *Builder) BuildTitlePrompt(sel models.Selection, emotion string) (string, error) {
	set, err := b.templateSet(sel.Language)
	if err != nil {
		return "", err
	}
	return render(set.title, b.data(sel, emotion))
}

func (b *Builder) templateSet(lang models.Language) (templateSet, error) {
	set, ok := b.templates[lang]
	if !ok {
		return templateSet{}, fmt.Errorf("no prompt template for language %q", lang)
	}
	return set, nil
}

func (b *Builder) data(sel models.Selection, emotion string) templateData {
	return templateData{
		Character: lookupPhrase(characterPhrases, sel.Character),
		Location:  lookupPhrase(locationPhrases, sel.Location),
		Event:     lookupPhrase(eventPhrases, sel.Event),
		Emotion:   emotion,
	}
}

func render(tmpl *template.Template, data templateData) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return sb.String(), nil
}
