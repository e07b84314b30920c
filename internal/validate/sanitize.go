package validate

import (
	"regexp"
	"strings"
)

// maxTextLen — предел длины свободного текста после очистки.
const maxTextLen = 100

// allowedChars оставляет буквы, цифры, пробелы и знаки @ + . , -
var allowedChars = regexp.MustCompile(`[^\p{L}\p{N}_\s@+.,-]`)

// Sanitize очищает свободный текст пользователя: убирает служебные символы,
// обрезает пробелы и ограничивает длину.
func Sanitize(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	runes := []rune(text)
	if len(runes) > maxTextLen {
		text = string(runes[:maxTextLen])
	}
	return allowedChars.ReplaceAllString(text, "")
}
