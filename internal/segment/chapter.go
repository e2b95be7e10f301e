package segment

import (
	"regexp"
	"strings"
)

// Patterns for chapter headings: "Chapter 7", "CHAPTER VII", "7. Title",
// and "Part II" styles. A page whose early lines match becomes a boundary.
var (
	chapterWordRe = regexp.MustCompile(`^\s*((?:Chapter|CHAPTER|Part|PART)\s+(?:[0-9]+|[IVXLCDM]+))\b[.:\s]*(.*)$`)
	chapterNumRe  = regexp.MustCompile(`^\s*([0-9]{1,3})[.)]\s+([A-Z][^.]{2,80})\s*$`)
)

// detectChapterHeading reports whether the page text opens with a
// chapter-like heading and returns a title derived from it. Only the first
// few non-blank lines are considered; chapter starts sit at the top of a
// page, and scanning deeper produces false boundaries from running text.
func detectChapterHeading(text string) (string, bool) {
	seen := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		seen++
		if seen > 5 {
			break
		}
		if m := chapterWordRe.FindStringSubmatch(line); m != nil {
			title := strings.TrimSpace(m[1])
			if rest := strings.TrimSpace(m[2]); rest != "" {
				title += " " + rest
			}
			return title, true
		}
		if m := chapterNumRe.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1] + " " + m[2]), true
		}
	}
	return "", false
}
