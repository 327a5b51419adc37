package rubric

import "regexp"

// Word boundaries (\b) and \s are ASCII-only in RE2. A trigger word glued
// to a non-ASCII letter, as in "éimagine", still matches, and Unicode line
// separators such as U+2028 do not count as whitespace.

// pattern is a named, precompiled search expression. Names show up in
// CriterionResult.Details so a reader can see which rule fired.
type pattern struct {
	name string
	re   *regexp.Regexp
}

func (p pattern) match(s string) bool { return p.re.MatchString(s) }

func mustPattern(name, expr string) pattern {
	return pattern{name: name, re: regexp.MustCompile(expr)}
}

// analogyPatterns are searched case-insensitively anywhere in the text.
var analogyPatterns = []pattern{
	mustPattern("like a/an", `(?i)\blike\s+(?:a|an)\b`),
	mustPattern("similar to", `(?i)\bsimilar\s+to\b`),
	mustPattern("compare to/with", `(?i)\bcompare\s+(?:to|with)\b`),
	mustPattern("imagine", `(?i)\bimagine\b`),
	mustPattern("think of it as", `(?i)\bthink\s+of\s+(?:it|this)\s+as\b`),
	mustPattern("just as", `(?i)\bjust\s+as\b`),
	mustPattern("in the same way", `(?i)\bin\s+the\s+same\s+way\b`),
	mustPattern("analogy", `(?i)\banalog(?:y|ous)\b`),
}

// diagramIndicators are matched per line, case-sensitively.
var diagramIndicators = []pattern{
	mustPattern("box run", `[+\-|]{3,}`),
	mustPattern("box drawing", `[─│┌┐└┘├┤┬┴┼]`),
	mustPattern("arrow", `[→←↑↓⟶⟵]`),
	mustPattern("connector", `^\s*[|/\\]`),
	mustPattern("boxed arrow", `\[.*\].*[→←]`),
}

// treeGlyphs is the fallback tree-drawing check applied to lines that no
// diagram indicator matched.
var treeGlyphs = regexp.MustCompile(`[├└│]`)

// wordChar matches a letter, digit or underscore in any script. RE2's \w is
// ASCII-only, so list items such as "1. Über" need the Unicode classes.
const wordChar = `[\p{L}\p{N}_]`

// walkthroughPatterns are searched case-insensitively in multi-line mode.
// Only the number of distinct patterns that match is significant.
var walkthroughPatterns = []pattern{
	mustPattern("sequence word", `(?im)\b(?:first|second|third|then|next|finally|step\s*\d+)\b`),
	mustPattern("numbered list", `(?im)\d+\.\s+`+wordChar+`+`),
	mustPattern("bulleted list", `(?im)(?:^|\n)\s*-\s+`+wordChar+`+`),
	mustPattern("conditional clause", `(?im)\bwhen\s+`+wordChar+`+.*,\s*(?:it|the)`),
	mustPattern("after that", `(?im)\bafter\s+(?:that|this)\b`),
}

// gotchaPatterns are searched case-insensitively anywhere in the text.
var gotchaPatterns = []pattern{
	mustPattern("gotcha", `(?i)\bgotcha\b`),
	mustPattern("common mistake", `(?i)\bcommon\s+(?:mistake|error|pitfall|misconception)\b`),
	mustPattern("watch out", `(?i)\bwatch\s+out\b`),
	mustPattern("be careful", `(?i)\bbe\s+careful\b`),
	mustPattern("note that", `(?i)\bnote\s+that\b`),
	mustPattern("important", `(?i)\bimportant(?:ly)?\b`),
	mustPattern("might think", `(?i)\bmight\s+(?:think|expect|assume)\b`),
	mustPattern("don't forget", `(?i)\bdon't\s+(?:forget|confuse)\b`),
	mustPattern("easy to miss", `(?i)\beasy\s+to\s+(?:miss|forget|overlook)\b`),
	mustPattern("catch ... was", `(?i)\bcatch\b.*\bwas\b`),
}

// anyMatch reports whether any pattern in set matches s.
func anyMatch(set []pattern, s string) bool {
	for _, p := range set {
		if p.match(s) {
			return true
		}
	}
	return false
}

// matchedNames returns the names of every pattern in set that matches s,
// in set order.
func matchedNames(set []pattern, s string) []string {
	var names []string
	for _, p := range set {
		if p.match(s) {
			names = append(names, p.name)
		}
	}
	return names
}
