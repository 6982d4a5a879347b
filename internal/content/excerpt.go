package content

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// Excerpt reduces CMS HTML to plain text suitable for cards and meta
// descriptions: tags and script/style bodies are dropped, whitespace is
// collapsed, and the text is truncated to maxRunes on a word boundary with
// an ellipsis.
func Excerpt(rawHTML string, maxRunes int) string {
	text := collapseWhitespace(stripHTML(rawHTML))
	if maxRunes <= 0 {
		return text
	}
	return truncateRunes(text, maxRunes)
}

// stripHTML extracts the text content of an HTML fragment.
func stripHTML(rawHTML string) string {
	if strings.TrimSpace(rawHTML) == "" {
		return ""
	}

	tokenizer := html.NewTokenizer(strings.NewReader(rawHTML))
	var builder strings.Builder
	skipDepth := 0
	for {
		tokenType := tokenizer.Next()
		switch tokenType {
		case html.ErrorToken:
			return builder.String()
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if isSkippedTag(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if isSkippedTag(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			builder.Write(tokenizer.Text())
			builder.WriteByte(' ')
		}
	}
}

func isSkippedTag(name string) bool {
	return name == "script" || name == "style"
}

func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// truncateRunes shortens text to at most maxRunes runes, preferring the last
// word boundary and appending an ellipsis when content was cut.
func truncateRunes(text string, maxRunes int) string {
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}

	cut := maxRunes
	for cut > 0 && !unicode.IsSpace(runes[cut-1]) {
		cut--
	}
	if cut == 0 {
		cut = maxRunes
	}
	return strings.TrimSpace(string(runes[:cut])) + "…"
}
