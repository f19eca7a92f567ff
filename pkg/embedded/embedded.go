package embedded

import (
	_ "embed"
)

// Prompt templates, rendered with text/template.
// Fields: .Character .Location .Event .Emotion
//
//go:embed data/templates/poem_english.tmpl
var PoemEnglishTmpl []byte

//go:embed data/templates/poem_chinese.tmpl
var PoemChineseTmpl []byte

//go:embed data/templates/title_english.tmpl
var TitleEnglishTmpl []byte

//go:embed data/templates/title_chinese.tmpl
var TitleChineseTmpl []byte
