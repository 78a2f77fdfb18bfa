// Package naming implements the static slug-derivation lint from the
// registry's naming rules: every game id in the registry must equal the
// deterministic slug of its display name under this procedure. It is a
// test-only property checker, not behavior the dispatcher depends on at
// runtime.
package naming

import (
	"regexp"
	"strconv"
	"strings"
)

// Result carries the derived slug plus an informational rule-stack trace.
// The rule stack does not affect Slug and is accumulated even on paths that
// ultimately produce the right answer; it exists purely so a failing
// registry entry can be diagnosed.
type Result struct {
	Slug      string
	RuleStack []string
}

var romanNumerals = map[string]string{
	"I": "1", "II": "2", "III": "3", "IV": "4", "V": "5",
	"VI": "6", "VII": "7", "VIII": "8", "IX": "9", "X": "10",
	"XI": "11", "XII": "12", "XIII": "13", "XIV": "14", "XV": "15",
}

var digitLetterBoundary = regexp.MustCompile(`(\d)([A-Za-z])|([A-Za-z])(\d)`)

var spelledDigits = [10]string{"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}

// Slug derives the expected game id for displayName, per the §4.6 procedure:
// lowercase alphanumeric tokens, Roman-numeral conversion (except the
// leading word), digit/letter boundary splitting, leading-digit spelling,
// trailing-digit-only suffixing, and acronym formation for more than two
// tokens.
func Slug(displayName string) Result {
	r := Result{}
	r.RuleStack = append(r.RuleStack, "start:"+displayName)

	name, parenSuffix := splitParenthesizedSuffix(displayName)
	if parenSuffix != "" {
		r.RuleStack = append(r.RuleStack, "set-aside-parenthesized:"+parenSuffix)
	}

	raw := strings.FieldsFunc(name, func(c rune) bool { return c == ' ' || c == '-' })
	r.RuleStack = append(r.RuleStack, "tokenize:"+strings.Join(raw, "|"))

	tokens := make([]string, 0, len(raw))
	for i, tok := range raw {
		if i > 0 {
			if dec, ok := romanNumerals[strings.ToUpper(tok)]; ok {
				r.RuleStack = append(r.RuleStack, "roman:"+tok+"->"+dec)
				tokens = append(tokens, dec)
				continue
			}
		}
		tokens = append(tokens, splitAlnumBoundary(tok)...)
	}
	r.RuleStack = append(r.RuleStack, "after-roman-and-split:"+strings.Join(tokens, "|"))

	if len(tokens) > 0 && startsWithDigit(tokens[0]) {
		tokens[0] = spellLeadingDigit(tokens[0])
		r.RuleStack = append(r.RuleStack, "spell-leading-digit:"+tokens[0])
	}

	var suffix string
	if len(tokens) > 1 && isAllDigits(tokens[len(tokens)-1]) {
		suffix = tokens[len(tokens)-1]
		tokens = tokens[:len(tokens)-1]
		r.RuleStack = append(r.RuleStack, "trailing-digit-suffix:"+suffix)
	}

	var slug string
	switch {
	case len(tokens) <= 2:
		slug = strings.ToLower(strings.Join(tokens, ""))
		r.RuleStack = append(r.RuleStack, "concatenate")
	default:
		var acro strings.Builder
		for _, tok := range tokens {
			if tok == "" {
				continue
			}
			acro.WriteByte(byte(strings.ToLower(tok)[0]))
		}
		slug = acro.String()
		r.RuleStack = append(r.RuleStack, "acronym")
	}

	slug += suffix
	r.Slug = strings.ToLower(slug)
	return r
}

func splitParenthesizedSuffix(s string) (string, string) {
	idx := strings.Index(s, "(")
	if idx < 0 {
		return s, ""
	}
	end := strings.Index(s[idx:], ")")
	if end < 0 {
		return s, ""
	}
	paren := s[idx : idx+end+1]
	rest := strings.TrimSpace(s[:idx] + s[idx+end+1:])
	return rest, paren
}

func splitAlnumBoundary(tok string) []string {
	if !digitLetterBoundary.MatchString(tok) {
		return []string{tok}
	}
	var parts []string
	var cur strings.Builder
	isDigit := func(r rune) bool { return r >= '0' && r <= '9' }
	var lastWasDigit *bool
	for _, r := range tok {
		d := isDigit(r)
		if lastWasDigit != nil && *lastWasDigit != d {
			parts = append(parts, cur.String())
			cur.Reset()
		}
		cur.WriteRune(r)
		lastWasDigit = &d
	}
	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func spellLeadingDigit(s string) string {
	n, err := strconv.Atoi(string(s[0]))
	if err != nil {
		return s
	}
	return spelledDigits[n] + s[1:]
}
