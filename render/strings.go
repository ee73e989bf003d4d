package render

import (
	"strings"
	"unicode"
)

// splitWords breaks an identifier into its constituent words, treating
// spaces, underscores, hyphens, case transitions, and letter/digit
// boundaries as separators. Every case conversion below goes through this
// one splitter so the conversions compose predictably.
func splitWords(s string) []string {
	if s == "" {
		return nil
	}

	var words []string
	var current strings.Builder
	var prevChar rune
	var prevWasUpper bool

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	for i, char := range s {
		isUpper := unicode.IsUpper(char)
		isLetter := unicode.IsLetter(char)
		isDigit := unicode.IsDigit(char)

		switch {
		case char == ' ' || char == '_' || char == '-':
			flush()
		case i > 0 && isUpper && !prevWasUpper && (unicode.IsLower(prevChar) || unicode.IsDigit(prevChar)):
			flush()
			current.WriteRune(char)
		case i > 0 && isLetter && unicode.IsDigit(prevChar):
			flush()
			current.WriteRune(char)
		case i > 0 && isDigit && unicode.IsLetter(prevChar):
			flush()
			current.WriteRune(char)
		case isLetter || isDigit:
			current.WriteRune(char)
		}

		prevChar = char
		prevWasUpper = isUpper
	}
	flush()

	return words
}

// KebabCase converts s to kebab-case.
func KebabCase(s string) string {
	words := splitWords(s)
	for i, word := range words {
		words[i] = strings.ToLower(word)
	}
	return strings.Join(words, "-")
}

// SnakeCase converts s to snake_case.
func SnakeCase(s string) string {
	words := splitWords(s)
	for i, word := range words {
		words[i] = strings.ToLower(word)
	}
	return strings.Join(words, "_")
}

// PascalCase converts s to PascalCase.
func PascalCase(s string) string {
	var result strings.Builder
	for _, word := range splitWords(s) {
		result.WriteString(strings.ToUpper(word[:1]) + strings.ToLower(word[1:]))
	}
	return result.String()
}

// CamelCase converts s to camelCase.
func CamelCase(s string) string {
	words := splitWords(s)
	if len(words) == 0 {
		return ""
	}
	result := strings.ToLower(words[0])
	for _, word := range words[1:] {
		result += strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return result
}

// Humanize converts s to space-separated Title Words.
func Humanize(s string) string {
	words := splitWords(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}

func Upper(s string) string { return strings.ToUpper(s) }

func Lower(s string) string { return strings.ToLower(s) }

func Trim(s string) string { return strings.TrimSpace(s) }

var irregularPlurals = map[string]string{
	"person":    "people",
	"child":     "children",
	"man":       "men",
	"woman":     "women",
	"datum":     "data",
	"medium":    "media",
	"criterion": "criteria",
}

var irregularSingulars = func() map[string]string {
	m := make(map[string]string, len(irregularPlurals))
	for singular, plural := range irregularPlurals {
		m[plural] = singular
	}
	return m
}()

// Pluralize converts a lowercase English noun to its plural form.
func Pluralize(word string) string {
	if word == "" {
		return ""
	}
	word = strings.ToLower(word)

	if plural, ok := irregularPlurals[word]; ok {
		return plural
	}

	switch {
	case strings.HasSuffix(word, "s"), strings.HasSuffix(word, "x"),
		strings.HasSuffix(word, "z"), strings.HasSuffix(word, "ch"),
		strings.HasSuffix(word, "sh"):
		return word + "es"
	case strings.HasSuffix(word, "y") && len(word) > 1 &&
		!strings.ContainsRune("aeiou", rune(word[len(word)-2])):
		return word[:len(word)-1] + "ies"
	}
	return word + "s"
}

// Singularize converts a lowercase English noun to its singular form.
func Singularize(word string) string {
	if word == "" {
		return ""
	}
	word = strings.ToLower(word)

	if singular, ok := irregularSingulars[word]; ok {
		return singular
	}

	switch {
	case strings.HasSuffix(word, "ies") && len(word) > 3:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "es") && len(word) > 2:
		base := word[:len(word)-2]
		if strings.HasSuffix(base, "s") || strings.HasSuffix(base, "x") ||
			strings.HasSuffix(base, "z") || strings.HasSuffix(base, "ch") ||
			strings.HasSuffix(base, "sh") {
			return base
		}
		return word[:len(word)-1]
	case strings.HasSuffix(word, "s") && len(word) > 1:
		return word[:len(word)-1]
	}
	return word
}
