package search

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NoMatchQuery is a sentinel FTS5 expression guaranteed to match nothing.
// Returned for inputs with no searchable content so downstream search always
// receives a syntactically valid query and yields zero rows.
const NoMatchQuery = `"noresultsentinel"`

// ftsMetaChars strips FTS5 query metacharacters from raw user input.
var ftsMetaChars = strings.NewReplacer(`"`, "", "(", "", ")", "", "*", "", "^", "")

// stopWords lists common English function words excluded from tokenization.
var stopWords = map[string]bool{
	"a": true, "about": true, "above": true, "after": true, "again": true,
	"all": true, "am": true, "an": true, "and": true, "any": true,
	"are": true, "as": true, "at": true, "be": true, "because": true,
	"been": true, "before": true, "being": true, "below": true, "between": true,
	"both": true, "but": true, "by": true, "can": true, "did": true,
	"do": true, "does": true, "doing": true, "down": true, "during": true,
	"each": true, "few": true, "for": true, "from": true, "further": true,
	"had": true, "has": true, "have": true, "having": true, "he": true,
	"her": true, "here": true, "him": true, "his": true, "how": true,
	"i": true, "if": true, "in": true, "into": true, "is": true,
	"it": true, "its": true, "just": true, "me": true, "more": true,
	"most": true, "my": true, "no": true, "nor": true, "not": true,
	"now": true, "of": true, "off": true, "on": true, "once": true,
	"only": true, "or": true, "other": true, "our": true, "out": true,
	"over": true, "own": true, "same": true, "she": true, "so": true,
	"some": true, "such": true, "than": true, "that": true, "the": true,
	"their": true, "them": true, "then": true, "there": true, "these": true,
	"they": true, "this": true, "those": true, "through": true, "to": true,
	"too": true, "under": true, "until": true, "up": true, "very": true,
	"was": true, "we": true, "were": true, "what": true, "when": true,
	"where": true, "which": true, "while": true, "who": true, "why": true,
	"will": true, "with": true, "you": true, "your": true,
}

// BuildFTSQuery converts raw user input into a safe FTS5 match expression.
// Metacharacters are stripped; stop words and single-character tokens are
// dropped; surviving tokens are prefix-wildcarded and joined with AND, quoted
// when they contain characters FTS5 barewords disallow. Input that sanitizes
// to nothing searchable returns NoMatchQuery; input consisting solely of stop
// words is searched literally as one prefix token instead.
func BuildFTSQuery(input string) string {
	sanitized := strings.TrimSpace(ftsMetaChars.Replace(input))
	if sanitized == "" {
		return NoMatchQuery
	}

	lowered := strings.ToLower(sanitized)

	var kept []string
	for _, tok := range strings.Fields(lowered) {
		if stopWords[tok] {
			continue
		}
		if utf8.RuneCountInString(tok) <= 1 {
			continue
		}
		if !hasIndexableRune(tok) {
			continue
		}
		kept = append(kept, tok)
	}

	if len(kept) == 0 {
		// Nothing survived tokenization. If the input has any indexable
		// content (e.g. it was all stop words), search it literally as a
		// single prefix token rather than matching nothing.
		if hasIndexableRune(lowered) {
			if isBarewordPhrase(lowered) {
				return lowered + "*"
			}
			return `"` + lowered + `"*`
		}
		return NoMatchQuery
	}

	for i, tok := range kept {
		kept[i] = prefixToken(tok)
	}
	return strings.Join(kept, " AND ")
}

// prefixToken turns a sanitized token into an FTS5 prefix term. Tokens made
// of bareword characters pass through as tok*; anything else (hyphens,
// apostrophes, dots) must be quoted or FTS5 rejects the expression. Double
// quotes were already stripped, so quoting cannot be broken from inside.
func prefixToken(tok string) string {
	if isBareword(tok) {
		return tok + "*"
	}
	return `"` + tok + `"*`
}

// isBareword reports whether every rune of s is valid in an unquoted FTS5
// token: ASCII alphanumerics, underscore, or any codepoint >= U+0080.
func isBareword(s string) bool {
	for _, r := range s {
		switch {
		case r >= 0x80:
		case r == '_':
		case 'a' <= r && r <= 'z':
		case 'A' <= r && r <= 'Z':
		case '0' <= r && r <= '9':
		default:
			return false
		}
	}
	return s != ""
}

// isBarewordPhrase reports whether s is whitespace-separated barewords, which
// FTS5 accepts unquoted as an implicit phrase.
func isBarewordPhrase(s string) bool {
	for _, tok := range strings.Fields(s) {
		if !isBareword(tok) {
			return false
		}
	}
	return true
}

// hasIndexableRune reports whether s contains at least one letter or digit.
func hasIndexableRune(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
