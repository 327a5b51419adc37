package rubric

import (
	"fmt"
	"strings"
)

// MinDiagramLines is the number of qualifying lines a text needs before it
// counts as containing a diagram. A single line is not enough.
const MinDiagramLines = 2

// MinWalkthroughIndicators is the number of distinct walkthrough patterns
// that must each match at least once.
const MinWalkthroughIndicators = 2

// DetectAnalogy reports whether text contains an analogy or comparison.
func DetectAnalogy(text string) bool {
	return anyMatch(analogyPatterns, text)
}

// DetectDiagram reports whether at least MinDiagramLines lines of text
// look like part of an ASCII or Unicode diagram.
func DetectDiagram(text string) bool {
	return DiagramLines(text) >= MinDiagramLines
}

// DiagramLines counts the lines of text that qualify as diagram lines. A
// line is counted once no matter how many conditions it satisfies.
func DiagramLines(text string) int {
	return len(diagramLineNumbers(text))
}

// diagramLineNumbers returns the 1-based numbers of qualifying lines.
func diagramLineNumbers(text string) []int {
	var lines []int
	for i, line := range strings.Split(text, "\n") {
		if isDiagramLine(line) {
			lines = append(lines, i+1)
		}
	}
	return lines
}

func isDiagramLine(line string) bool {
	if anyMatch(diagramIndicators, line) {
		return true
	}
	return treeGlyphs.MatchString(line) ||
		(strings.Count(line, "[") >= 2 && strings.Count(line, "]") >= 2)
}

// DetectWalkthrough reports whether text reads as a step-by-step
// explanation, i.e. at least MinWalkthroughIndicators distinct walkthrough
// patterns occur in it.
func DetectWalkthrough(text string) bool {
	return WalkthroughIndicators(text) >= MinWalkthroughIndicators
}

// WalkthroughIndicators returns how many distinct walkthrough patterns
// match text. Repeated matches of one pattern count once.
func WalkthroughIndicators(text string) int {
	n := 0
	for _, p := range walkthroughPatterns {
		if p.match(text) {
			n++
		}
	}
	return n
}

// DetectGotcha reports whether text warns about a caveat or common mistake.
func DetectGotcha(text string) bool {
	return anyMatch(gotchaPatterns, text)
}

func analogyDetails(text string) []string {
	return matchDetails(analogyPatterns, text)
}

func diagramDetails(text string) []string {
	lines := diagramLineNumbers(text)
	if len(lines) == 0 {
		return []string{fmt.Sprintf("no diagram lines (need %d)", MinDiagramLines)}
	}
	nums := make([]string, len(lines))
	for i, n := range lines {
		nums[i] = fmt.Sprint(n)
	}
	return []string{fmt.Sprintf("%d diagram line(s) (need %d): lines %s",
		len(lines), MinDiagramLines, strings.Join(nums, ", "))}
}

func walkthroughDetails(text string) []string {
	names := matchedNames(walkthroughPatterns, text)
	details := []string{fmt.Sprintf("%d distinct indicator(s) (need %d)", len(names), MinWalkthroughIndicators)}
	for _, n := range names {
		details = append(details, "matched: "+n)
	}
	return details
}

func gotchaDetails(text string) []string {
	return matchDetails(gotchaPatterns, text)
}

func matchDetails(set []pattern, text string) []string {
	var details []string
	for _, n := range matchedNames(set, text) {
		details = append(details, "matched: "+n)
	}
	return details
}
