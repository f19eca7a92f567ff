package prompt

import (
	"strings"
	"testing"

	"github.com/Conceptual-Machines/verse-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	builder, err := NewPromptBuilder()
	require.NoError(t, err)
	require.NotNil(t, builder)
	return builder
}

func heroSelection(lang models.Language) models.Selection {
	return models.Selection{
		Character: "hero",
		Location:  "castle",
		Event:     "battle",
		Emotion:   "joy",
		Language:  lang,
	}
}

func TestBuildPoemPromptEnglishExample(t *testing.T) {
	builder := newTestBuilder(t)

	prompt, err := builder.BuildPoemPrompt(heroSelection(models.LanguageEnglish))
	require.NoError(t, err)

	for _, want := range []string{"brave hero", "mighty castle", "epic battle", "boundless joy"} {
		assert.Contains(t, prompt, want)
	}
	assert.Contains(t, prompt, "archaic English")
	assert.Contains(t, prompt, "ABAB or ABCB")
	assert.Contains(t, prompt, "iambic meter")
	assert.Contains(t, prompt, "3-4 stanzas (12-16 lines total)")
	assert.Contains(t, prompt, "Upon the castle walls so high,")
	assert.Contains(t, prompt, "without any explanations or modern commentary")
	assert.Equal(t, strings.TrimSpace(prompt), prompt)
}

func TestBuildPoemPromptChinese(t *testing.T) {
	builder := newTestBuilder(t)

	prompt, err := builder.BuildPoemPrompt(heroSelection(models.LanguageChinese))
	require.NoError(t, err)

	assert.Contains(t, prompt, "七言绝句或律诗")
	assert.Contains(t, prompt, "每句7个字")
	assert.Contains(t, prompt, "不要包含任何解释")
	assert.Contains(t, prompt, "角色：brave hero")
	assert.Contains(t, prompt, `深刻表达"boundless joy"这种情感`)
}

func TestBuildPoemPromptUsesMappedPhrasesNotCodes(t *testing.T) {
	builder := newTestBuilder(t)

	for _, character := range characterOptions {
		for _, location := range locationOptions {
			for _, event := range eventOptions {
				for _, emotion := range emotionOptions {
					sel := models.Selection{
						Character: character.Code,
						Location:  location.Code,
						Event:     event.Code,
						Emotion:   emotion.Code,
						Language:  models.LanguageEnglish,
					}
					prompt, err := builder.BuildPoemPrompt(sel)
					require.NoError(t, err)

					assert.Contains(t, prompt, "Character: "+character.Phrase)
					assert.Contains(t, prompt, "Location: "+location.Phrase)
					assert.Contains(t, prompt, "Event: "+event.Phrase)
					assert.Contains(t, prompt, "Emotion: "+emotion.Phrase)
				}
			}
		}
	}
}

func TestBuildPoemPromptUnknownCodesPassThrough(t *testing.T) {
	builder := newTestBuilder(t)

	sel := models.Selection{
		Character: "wandering bard",
		Location:  "misty moor",
		Event:     "coronation",
		Emotion:   "joy",
		Language:  models.LanguageEnglish,
	}
	prompt, err := builder.BuildPoemPrompt(sel)
	require.NoError(t, err)

	assert.Contains(t, prompt, "Character: wandering bard")
	assert.Contains(t, prompt, "Location: misty moor")
	assert.Contains(t, prompt, "Event: coronation")
}

func TestResolveEmotion(t *testing.T) {
	builder := newTestBuilder(t)

	tests := []struct {
		name          string
		emotion       string
		customEmotion string
		want          string
	}{
		{name: "preset", emotion: "sorrow", want: "deep sorrow"},
		{name: "custom preferred", emotion: "joy", customEmotion: "quiet dread", want: "quiet dread"},
		{name: "custom trimmed", customEmotion: "  hopeful yearning \n", want: "hopeful yearning"},
		{name: "whitespace custom falls back to preset", emotion: "rage", customEmotion: "   ", want: "righteous rage"},
		{name: "unknown preset", emotion: "ennui", want: FallbackEmotion},
		{name: "nothing", want: FallbackEmotion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := heroSelection(models.LanguageEnglish)
			sel.Emotion = tt.emotion
			sel.CustomEmotion = tt.customEmotion
			assert.Equal(t, tt.want, builder.ResolveEmotion(sel))
		})
	}
}

func TestBuildPoemPromptContainsCustomEmotionVerbatim(t *testing.T) {
	builder := newTestBuilder(t)

	sel := heroSelection(models.LanguageChinese)
	sel.CustomEmotion = "思乡之情"

	prompt, err := builder.BuildPoemPrompt(sel)
	require.NoError(t, err)
	assert.Contains(t, prompt, "情感：思乡之情")
	assert.NotContains(t, prompt, "boundless joy")
}

func TestBuildTitlePrompt(t *testing.T) {
	builder := newTestBuilder(t)

	english, err := builder.BuildTitlePrompt(heroSelection(models.LanguageEnglish), "boundless joy")
	require.NoError(t, err)
	assert.Equal(t,
		`Create a short, poetic medieval title (2-4 words) for a verse about a brave hero in a mighty castle `+
			`experiencing epic battle with the emotion of "boundless joy". Return only the title.`,
		english)

	chinese, err := builder.BuildTitlePrompt(heroSelection(models.LanguageChinese), "boundless joy")
	require.NoError(t, err)
	assert.Contains(t, chinese, "4个字的古典标题")
	assert.Contains(t, chinese, "只返回标题")
	assert.Contains(t, chinese, "brave hero在mighty castle经历epic battle")
}

func TestBuildPromptUnsupportedLanguage(t *testing.T) {
	builder := newTestBuilder(t)

	_, err := builder.BuildPoemPrompt(heroSelection("latin"))
	assert.Error(t, err)

	_, err = builder.BuildTitlePrompt(heroSelection("latin"), "joy")
	assert.Error(t, err)
}

func TestOptionsCatalogue(t *testing.T) {
	catalogue := Options()

	assert.Len(t, catalogue.Characters, 3)
	assert.Len(t, catalogue.Locations, 3)
	assert.Len(t, catalogue.Events, 3)
	assert.Len(t, catalogue.Emotions, 3)
	require.Len(t, catalogue.Languages, 2)
	assert.Equal(t, "english", catalogue.Languages[0].Code)
	assert.Equal(t, "Hero of Legend", catalogue.Characters[0].Label)

	// Mutating the returned copy must not touch the tables
	catalogue.Characters[0].Phrase = "changed"
	assert.Equal(t, "brave hero", characterPhrases["hero"])
	assert.Equal(t, "brave hero", Options().Characters[0].Phrase)
}
