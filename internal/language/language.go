package language

import (
	"fmt"
	"strings"
)

// Code identifies a language as it appears in word records and paths.
type Code string

const (
	Arabic       Code = "ar"
	Bangla       Code = "bn"
	Bosnian      Code = "bs"
	Bulgarian    Code = "bg"
	Catalan      Code = "ca"
	Chinese      Code = "zh"
	Croatian     Code = "hr"
	Czech        Code = "cs"
	Danish       Code = "da"
	Dutch        Code = "nl"
	English      Code = "en"
	Finnish      Code = "fi"
	French       Code = "fr"
	German       Code = "de"
	Greek        Code = "el"
	Hebrew       Code = "he"
	Hindi        Code = "hi"
	Hungarian    Code = "hu"
	Icelandic    Code = "is"
	Indonesian   Code = "id"
	Italian      Code = "it"
	Japanese     Code = "ja"
	Korean       Code = "ko"
	Latvian      Code = "lv"
	Lithuanian   Code = "lt"
	Macedonian   Code = "mk"
	Malay        Code = "ms"
	Norwegian    Code = "nb"
	Persian      Code = "fa"
	Polish       Code = "pl"
	PortugueseEU Code = "pt-pt"
	PortugueseBR Code = "pt-br"
	Romanian     Code = "ro"
	Russian      Code = "ru"
	Serbian      Code = "sr"
	Slovak       Code = "sk"
	Slovenian    Code = "sl"
	Spanish      Code = "es"
	Swedish      Code = "sv"
	Tagalog      Code = "fil"
	Tamil        Code = "ta"
	Turkish      Code = "tr"
	Ukrainian    Code = "uk"
	Urdu         Code = "ur"
	Vietnamese   Code = "vi"
)

// Pivot is the language every record carries; it anchors image identity.
const Pivot = English

// Info describes one entry of the language table.
type Info struct {
	Code          Code
	Name          string
	Tag           string // BCP-47 locale tag
	Voice         string // TTS voice name, empty when none is configured
	FrequencyCode string // code understood by frequency list sources
}

// HasVoice reports whether speech synthesis is available for the language.
func (i Info) HasVoice() bool { return i.Voice != "" }

var languages = []Info{
	{Arabic, "Arabic", "ar-SA", "", ""},
	{Bangla, "Bangla", "bn-IN", "", ""},
	{Bosnian, "Bosnian", "bs-BA", "", ""},
	{Bulgarian, "Bulgarian", "bg-BG", "", ""},
	{Catalan, "Catalan", "ca-ES", "ca-ES-Standard-B", ""},
	{Chinese, "Chinese", "zh-CN", "yue-HK-Standard-D", ""},
	{Croatian, "Croatian", "hr-HR", "", ""},
	{Czech, "Czech", "cs-CZ", "", ""},
	{Danish, "Danish", "da-DK", "", ""},
	{Dutch, "Dutch", "nl-NL", "", ""},
	{English, "English", "en-US", "en-GB-Studio-C", ""},
	{Finnish, "Finnish", "fi-FI", "", ""},
	{French, "French", "fr-FR", "", ""},
	{German, "German", "de-DE", "de-DE-Studio-B", ""},
	{Greek, "Greek", "el-GR", "", ""},
	{Hebrew, "Hebrew", "he-IL", "", ""},
	{Hindi, "Hindi", "hi-IN", "", ""},
	{Hungarian, "Hungarian", "hu-HU", "", ""},
	{Icelandic, "Icelandic", "is-IS", "", ""},
	{Indonesian, "Indonesian", "id-ID", "", ""},
	{Italian, "Italian", "it-IT", "", ""},
	{Japanese, "Japanese", "ja-JP", "", ""},
	{Korean, "Korean", "ko-KR", "", ""},
	{Latvian, "Latvian", "lv-LV", "", ""},
	{Lithuanian, "Lithuanian", "lt-LT", "", ""},
	{Macedonian, "Macedonian", "mk-MK", "", ""},
	{Malay, "Malay", "ms-MY", "", ""},
	{Norwegian, "Norwegian", "nb-NO", "", ""},
	{Persian, "Persian", "fa-IR", "", ""},
	{Polish, "Polish", "pl-PL", "pl-PL-Standard-G", ""},
	{PortugueseEU, "Portuguese (Portugal)", "pt-PT", "pt-PT-Wavenet-F", "pt"},
	{PortugueseBR, "Portuguese (Brazil)", "pt-BR", "", "pt"},
	{Romanian, "Romanian", "ro-RO", "", ""},
	{Russian, "Russian", "ru-RU", "", ""},
	{Serbian, "Serbian", "sr-RS", "", ""},
	{Slovak, "Slovak", "sk-SK", "", ""},
	{Slovenian, "Slovenian", "sl-SI", "", ""},
	{Spanish, "Spanish", "es-ES", "", ""},
	{Swedish, "Swedish", "sv-SE", "", ""},
	{Tagalog, "Tagalog", "fil-PH", "", ""},
	{Tamil, "Tamil", "ta-IN", "", ""},
	{Turkish, "Turkish", "tr-TR", "", ""},
	{Ukrainian, "Ukrainian", "uk-UA", "", ""},
	{Urdu, "Urdu", "ur-PK", "", ""},
	{Vietnamese, "Vietnamese", "vi-VN", "", ""},
}

// supported lists the languages whose text field every finalized record must carry.
var supported = []Code{English}

var byCode map[Code]*Info

func init() {
	byCode = make(map[Code]*Info, len(languages))
	for i := range languages {
		e := &languages[i]
		if e.FrequencyCode == "" {
			e.FrequencyCode = string(e.Code)
		}
		byCode[e.Code] = e
	}
}

// Parse resolves user input such as "DE" or " pt-BR " to a known Code.
func Parse(value string) (Code, error) {
	code := Code(strings.ToLower(strings.TrimSpace(value)))
	if code == "" {
		return "", fmt.Errorf("language code is empty")
	}
	if _, ok := byCode[code]; !ok {
		return "", fmt.Errorf("unsupported language %q", value)
	}
	return code, nil
}

// Lookup returns the table entry for code.
func Lookup(code Code) (Info, bool) {
	e, ok := byCode[code]
	if !ok {
		return Info{}, false
	}
	return *e, true
}

// IsKnown reports whether field names a language of the table.
func IsKnown(field string) bool {
	_, ok := byCode[Code(field)]
	return ok
}

// All returns the language table in its canonical order.
func All() []Info {
	out := make([]Info, len(languages))
	copy(out, languages)
	return out
}

// Supported returns the languages required on every finalized record.
func Supported() []Code {
	out := make([]Code, len(supported))
	copy(out, supported)
	return out
}

// DisplayName returns the human-readable name, or the uppercased code when unknown.
func DisplayName(code Code) string {
	if strings.TrimSpace(string(code)) == "" {
		return "Unknown"
	}
	if e, ok := byCode[code]; ok {
		return e.Name
	}
	return strings.ToUpper(strings.TrimSpace(string(code)))
}

func (c Code) String() string { return string(c) }

// Info returns the table entry for c, or a zero Info carrying only the code.
func (c Code) Info() Info {
	if e, ok := byCode[c]; ok {
		return *e
	}
	return Info{Code: c}
}
