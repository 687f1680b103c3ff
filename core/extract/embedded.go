package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/leofalp/recall/core/parse"
)

// runEmbedded looks for a JSON array inside surrounding text. Arrays are tried
// in order of their opening bracket; the first one that mentions the quoted
// primary key and yields valid records wins.
func runEmbedded(text string, schema *Schema) ([]Record, bool) {
	key := quotedKeyPattern(schema.Primary())
	pairs := bracketPairs(text)

	for i := 0; i < len(pairs); i++ {
		p := pairs[i]
		if p.close < 0 {
			continue
		}
		region := text[p.open : p.close+1]
		if !key.MatchString(region) {
			// Nothing nested inside can mention the key either.
			for i+1 < len(pairs) && pairs[i+1].open < p.close {
				i++
			}
			continue
		}

		value, err := parse.Decode(region)
		if err != nil {
			continue
		}
		if records := buildLenient(schema, recordItems(parse.UnwrapSchemaValues(value), schema)); len(records) > 0 {
			return records, true
		}
	}
	return nil, false
}

// runRepaired handles arrays that are truncated or not quite JSON (single
// quotes, trailing commas, unquoted keys). The array opening before the first
// primary-key mention is run through jsonrepair up to its closing bracket, or
// to the end of the text when it never closes.
func runRepaired(text string, schema *Schema) ([]Record, bool) {
	loc := quotedKeyPattern(schema.Primary()).FindStringIndex(text)
	if loc == nil {
		return nil, false
	}
	start := strings.LastIndexByte(text[:loc[0]], '[')
	if start < 0 {
		return nil, false
	}

	end := len(text)
	for _, p := range bracketPairs(text[start:]) {
		if p.open == 0 {
			if p.close >= 0 {
				end = start + p.close + 1
			}
			break
		}
	}

	value, err := parse.Repair(text[start:end])
	if err != nil {
		return nil, false
	}
	records := buildLenient(schema, recordItems(parse.UnwrapSchemaValues(value), schema))
	return records, len(records) > 0
}

type bracketPair struct {
	open  int
	close int // -1 when the bracket never closes
}

// bracketPairs matches square brackets in a single pass starting at the
// first '['. Brackets inside JSON strings are ignored. Pairs are returned in
// order of their opening bracket.
func bracketPairs(text string) []bracketPair {
	first := strings.IndexByte(text, '[')
	if first < 0 {
		return nil
	}

	var (
		pairs    []bracketPair
		stack    []int
		inString bool
		escaped  bool
	)
	for i := first; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '[':
			stack = append(stack, len(pairs))
			pairs = append(pairs, bracketPair{open: i, close: -1})
		case ']':
			if len(stack) > 0 {
				pairs[stack[len(stack)-1]].close = i
				stack = stack[:len(stack)-1]
			}
		}
	}
	return pairs
}

// quotedKeyPattern matches a quoted key of f followed by a colon. Quotes may
// be single, double or backslash-escaped.
func quotedKeyPattern(f Field) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\\?["']\s*(?:` + keyAlternation(f.keys()) + `)\s*\\?["']\s*:`)
}

// keyAlternation joins keys into a regexp alternation, longest first so that
// a key never shadows a longer one sharing its prefix.
func keyAlternation(keys []string) string {
	sorted := append([]string(nil), keys...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	quoted := make([]string, len(sorted))
	for i, k := range sorted {
		quoted[i] = regexp.QuoteMeta(k)
	}
	return strings.Join(quoted, "|")
}
