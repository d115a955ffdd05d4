package tabular

import (
	"strings"

	"github.com/abadojack/whatlanggo"

	"github.com/madpixels/lingocards/internal/entity"
)

// DetectLanguage identifies the dominant language of a text sample and maps
// it onto the supported allow-list. Unknown scripts and unsupported languages
// degrade to the undetermined sentinel; this function never fails.
func DetectLanguage(text string) entity.Language {
	text = strings.TrimSpace(text)
	if text == "" {
		return entity.LanguageUndetermined
	}
	info := whatlanggo.Detect(text)
	return entity.ParseLanguage(whatlanggo.LangToString(info.Lang))
}
