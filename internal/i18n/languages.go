package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language describes a selectable UI language.
type Language struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"nativeName"`
}

var supportedCodes = []string{"en", "hi", "bn", "te", "mr", "ta", "gu", "kn", "ml", "pa", "or"}

// Languages returns the supported languages with English and native names.
func Languages() []Language {
	out := make([]Language, 0, len(supportedCodes))
	for _, code := range supportedCodes {
		tag := language.MustParse(code)
		out = append(out, Language{
			Code:       code,
			Name:       display.English.Languages().Name(tag),
			NativeName: display.Self.Name(tag),
		})
	}
	return out
}

// LookupLanguage returns the supported language for code.
func LookupLanguage(code string) (Language, bool) {
	for _, l := range Languages() {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// EnglishName returns the English display name for code, or code itself
// when it does not parse as a language tag.
func EnglishName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return code
}
