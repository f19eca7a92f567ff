package prompt

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Conceptual-Machines/verse-api/internal/models"
	"github.com/Conceptual-Machines/verse-api/pkg/embedded"
)

// Loader parses the embedded prompt templates
type Loader struct{}

func NewPromptLoader() *Loader {
	return &Loader{}
}

// templateSet holds the parsed poem and title templates for one language
type templateSet struct {
	poem  *template.Template
	title *template.Template
}

// Load parses the templates for every supported language
func (l *Loader) Load() (map[models.Language]templateSet, error) {
	sources := map[models.Language][2][]byte{
		models.LanguageEnglish: {embedded.PoemEnglishTmpl, embedded.TitleEnglishTmpl},
		models.LanguageChinese: {embedded.PoemChineseTmpl, embedded.TitleChineseTmpl},
	}

	sets := make(map[models.Language]templateSet, len(sources))
	for lang, src := range sources {
		poem, err := parse(string(lang)+"_poem", src[0])
		if err != nil {
			return nil, err
		}
		title, err := parse(string(lang)+"_title", src[1])
		if err != nil {
			return nil, err
		}
		sets[lang] = templateSet{poem: poem, title: title}
	}
	return sets, nil
}

func parse(name string, src []byte) (*template.Template, error) {
	body := strings.TrimSpace(string(src))
	if body == "" {
		return nil, fmt.Errorf("prompt template %s is empty", name)
	}
	tmpl, err := template.New(name).Option("missingkey=error").Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse prompt template %s: %w", name, err)
	}
	return tmpl, nil
}
