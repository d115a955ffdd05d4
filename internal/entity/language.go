package entity

import "strings"

// Language represents supported language codes using ISO-style abbreviations.
type Language string

const (
	// LanguageUndetermined is the sentinel for text whose language could not
	// be mapped to the supported set. It is a valid value, not an error.
	LanguageUndetermined Language = "und"

	LanguageEnglish    Language = "en"
	LanguageRussian    Language = "ru"
	LanguageSpanish    Language = "es"
	LanguageFrench     Language = "fr"
	LanguageGerman     Language = "de"
	LanguageItalian    Language = "it"
	LanguagePortuguese Language = "pt"
	LanguageJapanese   Language = "ja"
	LanguageKorean     Language = "ko"
	LanguageChinese    Language = "zh"
)

// Code returns the lowercase language code.
func (l Language) Code() string {
	return strings.TrimSpace(string(l))
}

// Known reports whether the language belongs to the supported set.
func (l Language) Known() bool {
	switch l {
	case LanguageEnglish, LanguageRussian, LanguageSpanish, LanguageFrench,
		LanguageGerman, LanguageItalian, LanguagePortuguese, LanguageJapanese,
		LanguageKorean, LanguageChinese:
		return true
	default:
		return false
	}
}

// ParseLanguage converts an arbitrary string into a supported Language value.
// Both ISO 639-1 and 639-3 codes are accepted; anything else maps to the
// undetermined sentinel.
func ParseLanguage(code string) Language {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "en", "eng":
		return LanguageEnglish
	case "ru", "rus":
		return LanguageRussian
	case "es", "spa":
		return LanguageSpanish
	case "fr", "fra", "fre":
		return LanguageFrench
	case "de", "deu", "ger":
		return LanguageGerman
	case "it", "ita":
		return LanguageItalian
	case "pt", "por":
		return LanguagePortuguese
	case "ja", "jpn":
		return LanguageJapanese
	case "ko", "kor":
		return LanguageKorean
	case "zh", "zho", "cmn":
		return LanguageChinese
	default:
		return LanguageUndetermined
	}
}
