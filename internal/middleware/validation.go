package middleware

import (
	"errors"
	"regexp"
	"strings"
)

// Validation limits.
const (
	// MaxAttributionLength is the maximum length for a quote attribution.
	MaxAttributionLength = 256

	// MaxMoodLength is the maximum length for a mood label.
	MaxMoodLength = 64

	// MaxLanguageLength is the maximum length for a language tag.
	MaxLanguageLength = 16

	// MaxTagsLength is the maximum length for the raw tags string.
	MaxTagsLength = 512

	// MaxTagCount is the maximum number of comma separated tags.
	MaxTagCount = 20
)

// Validation errors.
var (
	ErrAttributionTooLong = errors.New("attribution exceeds maximum length")
	ErrMoodTooLong        = errors.New("mood exceeds maximum length")
	ErrLanguageInvalid    = errors.New("language tag is invalid")
	ErrTagsTooLong        = errors.New("tags exceed maximum length")
	ErrTooManyTags        = errors.New("too many tags")
)

// validLanguagePattern matches BCP 47 style language tags such as
// "en", "pt-BR" or "zh-Hant".
var validLanguagePattern = regexp.MustCompile(`^[a-zA-Z]{2,3}(-[a-zA-Z0-9]{2,8})*$`)

// ValidateAttribution validates the attributed-to field of a quote.
func ValidateAttribution(attribution string) error {
	if len(attribution) > MaxAttributionLength {
		return ErrAttributionTooLong
	}
	return nil
}

// ValidateMood validates a mood label.
func ValidateMood(mood string) error {
	if len(mood) > MaxMoodLength {
		return ErrMoodTooLong
	}
	return nil
}

// ValidateLanguage validates a language tag.
// Empty is valid (language is optional).
func ValidateLanguage(language string) error {
	if language == "" {
		return nil
	}

	if len(language) > MaxLanguageLength {
		return ErrLanguageInvalid
	}

	if !validLanguagePattern.MatchString(language) {
		return ErrLanguageInvalid
	}

	return nil
}

// ValidateTags validates a comma separated tag string.
// Empty is valid (tags are optional).
func ValidateTags(tags string) error {
	if tags == "" {
		return nil
	}

	if len(tags) > MaxTagsLength {
		return ErrTagsTooLong
	}

	if strings.Count(tags, ",")+1 > MaxTagCount {
		return ErrTooManyTags
	}

	return nil
}
