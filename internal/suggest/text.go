package suggest

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Offsets are counted in runes.

func clampCursor(runes []rune, cursor int) int {
	if cursor < 0 {
		return 0
	}
	if cursor > len(runes) {
		return len(runes)
	}
	return cursor
}

// LastWord returns the whitespace-delimited token ending at cursor. It is
// empty when the text before the cursor is empty or ends in whitespace.
func LastWord(text string, cursor int) string {
	runes := []rune(text)
	cursor = clampCursor(runes, cursor)
	before := runes[:cursor]
	if len(before) == 0 || unicode.IsSpace(before[len(before)-1]) {
		return ""
	}
	fields := strings.Fields(string(before))
	return fields[len(fields)-1]
}

// ApplySuggestion replaces the token ending at cursor with suggestion. Text
// after the cursor is kept as is. It returns the new text and the cursor
// positioned just after the inserted suggestion.
func ApplySuggestion(text string, cursor int, suggestion string) (string, int) {
	runes := []rune(text)
	cursor = clampCursor(runes, cursor)

	start := cursor
	for start > 0 && !unicode.IsSpace(runes[start-1]) {
		start--
	}

	newBefore := string(runes[:start]) + suggestion
	return newBefore + string(runes[cursor:]), utf8.RuneCountInString(newBefore)
}
