package translation

import (
	"strings"

	"codeberg.org/snonux/pdftranslate/internal/domain"
)

// languageNames maps ISO 639-1 codes to the English language names used
// in prompts
var languageNames = map[string]string{
	"ar": "Arabic",
	"bg": "Bulgarian",
	"cs": "Czech",
	"de": "German",
	"el": "Greek",
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"hi": "Hindi",
	"it": "Italian",
	"ja": "Japanese",
	"ko": "Korean",
	"nl": "Dutch",
	"pl": "Polish",
	"pt": "Portuguese",
	"ru": "Russian",
	"sv": "Swedish",
	"tr": "Turkish",
	"uk": "Ukrainian",
	"vi": "Vietnamese",
	"zh": "Chinese",

	"zh-cn": "Simplified Chinese",
	"zh-tw": "Traditional Chinese",
}

// NormalizeLanguage trims the target language and expands known ISO codes.
// Any other non-empty name is passed through unchanged.
func NormalizeLanguage(language string) (string, error) {
	language = strings.TrimSpace(language)
	if language == "" {
		return "", domain.NewValidationError("target language cannot be empty", nil)
	}

	key := strings.ReplaceAll(strings.ToLower(language), "_", "-")
	if name, ok := languageNames[key]; ok {
		return name, nil
	}
	return language, nil
}
