package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	structuralReplacer = strings.NewReplacer(
		"{", "", "}", "",
		"[", "", "]", "",
		`"`, "", "'", "",
	)
	whitespaceRun = regexp.MustCompile(`[\s\v\p{Z}\x{feff}]+`)

	escapeReplacer = strings.NewReplacer(
		`\\`, `\`,
		`\"`, `"`,
		`\n`, "\n",
		`\r`, "\r",
		`\t`, "\t",
	)

	quotedItem  = regexp.MustCompile(`\\?"([^"\\]*)\\?"`)
	firstNumber = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
)

// scrapedTrimSet is trimmed from both ends of values cut out of raw text.
const scrapedTrimSet = ",; "

// Clean strips structural punctuation ({ } [ ] and both quote characters),
// collapses whitespace runs (newlines and Unicode spaces such as NBSP
// included) into single spaces and trims the result. Clean is idempotent.
func Clean(s string) string {
	s = structuralReplacer.Replace(s)
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// cleanScraped cleans a value cut out of raw text: escape sequences are
// resolved first and separator punctuation is trimmed last.
func cleanScraped(s string) string {
	return strings.Trim(Clean(escapeReplacer.Replace(s)), scrapedTrimSet)
}

// coerceJSON converts a decoded JSON value into the field's Go type.
func coerceJSON(f Field, raw any) (any, bool) {
	switch f.kind() {
	case KindStringList:
		switch v := raw.(type) {
		case []any:
			items := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := scalarText(item); ok {
					if s = Clean(s); s != "" {
						items = append(items, s)
					}
				}
			}
			return items, true
		case string:
			return splitList(v), true
		}
		return nil, false

	case KindInteger:
		switch v := raw.(type) {
		case float64:
			if v != math.Trunc(v) || math.IsInf(v, 0) || v > math.MaxInt32 || v < math.MinInt32 {
				return nil, false
			}
			return int(v), true
		case string:
			return parseIndex(v)
		}
		return nil, false

	default:
		s, ok := scalarText(raw)
		if !ok {
			return nil, false
		}
		return Clean(s), true
	}
}

// coerceText converts a value scraped from raw text into the field's Go type.
func coerceText(f Field, raw string) (any, bool) {
	switch f.kind() {
	case KindStringList:
		return splitList(raw), true
	case KindInteger:
		return parseIndex(raw)
	default:
		return cleanScraped(raw), true
	}
}

func scalarText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}

// splitList turns a list written as text into cleaned items. Quoted items are
// taken in order; otherwise the text is split on commas.
func splitList(raw string) []string {
	var parts []string
	if matches := quotedItem.FindAllStringSubmatch(raw, -1); len(matches) > 0 {
		for _, m := range matches {
			parts = append(parts, m[1])
		}
	} else {
		parts = strings.Split(raw, ",")
	}

	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := cleanScraped(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// parseIndex reads an answer index: a plain integer, a single option letter
// (A is 0) or the first number found in the text when that number is whole.
func parseIndex(raw string) (any, bool) {
	s := cleanScraped(raw)
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if len(s) == 1 {
		c := s[0] | 0x20
		if c >= 'a' && c <= 'z' {
			return int(c - 'a'), true
		}
	}
	if m := firstNumber.FindString(s); m != "" && !strings.Contains(m, ".") {
		if n, err := strconv.Atoi(m); err == nil {
			return n, true
		}
	}
	return nil, false
}
