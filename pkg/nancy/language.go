package nancy

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Language identifies a localization of a game. The value is written to the
// LANG section as a single byte.
type Language byte

const (
	English Language = iota
	Russian
	German
	French
)

var languageNames = map[Language]string{
	English: "english",
	Russian: "russian",
	German:  "german",
	French:  "french",
}

func (l Language) String() string {
	if name, ok := languageNames[l]; ok {
		return name
	}
	return fmt.Sprintf("language(%d)", byte(l))
}

func ParseLanguage(name string) (Language, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for language, languageName := range languageNames {
		if languageName == name {
			return language, nil
		}
	}
	return 0, fmt.Errorf("unknown language %q", name)
}

// The games read text as single-byte Windows code pages.
func (l Language) codePage() encoding.Encoding {
	switch l {
	case Russian:
		return charmap.Windows1251
	default:
		return charmap.Windows1252
	}
}

// Encode converts UTF-8 text to the byte encoding the game uses for l.
func (l Language) Encode(text string) (string, error) {
	result, _, err := transform.String(l.codePage().NewEncoder(), text)
	if err != nil {
		return "", fmt.Errorf("could not encode %q as %s: %w", text, l, err)
	}
	return result, nil
}

// Decode converts text in the game's byte encoding for l back to UTF-8.
func (l Language) Decode(text string) (string, error) {
	result, _, err := transform.String(l.codePage().NewDecoder(), text)
	if err != nil {
		return "", err
	}
	return result, nil
}

func encodeLines(language Language, lines []string) ([]string, error) {
	encoded := make([]string, len(lines))
	for i, line := range lines {
		value, err := language.Encode(line)
		if err != nil {
			return nil, err
		}
		encoded[i] = value
	}
	return encoded, nil
}

func decodeLines(language Language, lines []string) ([]string, error) {
	decoded := make([]string, len(lines))
	for i, line := range lines {
		value, err := language.Decode(line)
		if err != nil {
			return nil, err
		}
		decoded[i] = value
	}
	return decoded, nil
}
