package prompt

import (
	"github.com/Conceptual-Machines/verse-api/internal/models"
	"github.com/samber/lo"
)

// FallbackEmotion is used when neither a custom nor a known preset emotion is given
const FallbackEmotion = "deep feeling"

// Option is one selectable code with the label shown in the form and the
// phrase interpolated into prompts
type Option struct {
	Code   string `json:"code"`
	Label  string `json:"label"`
	Phrase string `json:"phrase,omitempty"`
}

var (
	characterOptions = []Option{
		{Code: "hero", Label: "Hero of Legend", Phrase: "brave hero"},
		{Code: "noble", Label: "Noble Lord/Lady", Phrase: "noble lord or lady"},
		{Code: "commoner", Label: "Humble Commoner", Phrase: "humble commoner"},
	}
	locationOptions = []Option{
		{Code: "castle", Label: "Mighty Castle", Phrase: "mighty castle"},
		{Code: "forest", Label: "Enchanted Forest", Phrase: "enchanted forest"},
		{Code: "village", Label: "Peaceful Village", Phrase: "peaceful village"},
	}
	eventOptions = []Option{
		{Code: "battle", Label: "Epic Battle", Phrase: "epic battle"},
		{Code: "love", Label: "Forbidden Love", Phrase: "forbidden love"},
		{Code: "treachery", Label: "Dark Treachery", Phrase: "dark treachery"},
	}
	emotionOptions = []Option{
		{Code: "joy", Label: "Boundless Joy", Phrase: "boundless joy"},
		{Code: "sorrow", Label: "Deep Sorrow", Phrase: "deep sorrow"},
		{Code: "rage", Label: "Righteous Rage", Phrase: "righteous rage"},
	}
	languageOptions = []Option{
		{Code: string(models.LanguageEnglish), Label: "English (Archaic)"},
		{Code: string(models.LanguageChinese), Label: "Classical Chinese"},
	}
)

// phrase tables, code -> phrase; read-only after init
var (
	characterPhrases = phraseTable(characterOptions)
	locationPhrases  = phraseTable(locationOptions)
	eventPhrases     = phraseTable(eventOptions)
	emotionPhrases   = phraseTable(emotionOptions)
)

func phraseTable(options []Option) map[string]string {
	return lo.SliceToMap(options, func(o Option) (string, string) {
		return o.Code, o.Phrase
	})
}

// lookupPhrase returns the phrase for code, or the code itself when unknown
func lookupPhrase(table map[string]string, code string) string {
	return lo.ValueOr(table, code, code)
}

// Catalogue lists every selectable option per category
type Catalogue struct {
	Characters []Option `json:"characters"`
	Locations  []Option `json:"locations"`
	Events     []Option `json:"events"`
	Emotions   []Option `json:"emotions"`
	Languages  []Option `json:"languages"`
}

// Options returns a copy of the option catalogue
func Options() Catalogue {
	return Catalogue{
		Characters: append([]Option(nil), characterOptions...),
		Locations:  append([]Option(nil), locationOptions...),
		Events:     append([]Option(nil), eventOptions...),
		Emotions:   append([]Option(nil), emotionOptions...),
		Languages:  append([]Option(nil), languageOptions...),
	}
}
