package sanitize

import (
	"strings"
	"unicode"
)

// DescriptionsFromLines turns extracted lines into description bullets.
//
// Without any bullet glyph the trimmed, non-empty lines are returned as they
// are. Otherwise the lines are joined and split on the most frequent glyph;
// text ahead of the first bullet is kept as its own description.
func DescriptionsFromLines(lines []string, bullets BulletSet) []string {
	glyph, ok := mostCommonBullet(lines, bullets)
	if !ok {
		out := make([]string, 0, len(lines))
		for _, line := range lines {
			if t := trimBullet(line, bullets); t != "" {
				out = append(out, t)
			}
		}
		return out
	}

	var joined strings.Builder
	for i, line := range lines {
		if i > 0 && !strings.HasSuffix(lines[i-1], " ") && !strings.HasPrefix(line, " ") {
			joined.WriteByte(' ')
		}
		joined.WriteString(line)
	}

	parts := strings.Split(joined.String(), string(glyph))
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if t := trimBullet(part, bullets); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// mostCommonBullet returns the glyph occurring most often across lines. Ties
// go to the glyph listed first in the set.
func mostCommonBullet(lines []string, bullets BulletSet) (rune, bool) {
	counts := make(map[rune]int)
	for _, line := range lines {
		for _, r := range line {
			if bullets.IsBullet(r) {
				counts[r]++
			}
		}
	}

	var best rune
	bestCount := 0
	for _, g := range bullets.glyphs {
		if counts[g] > bestCount {
			best, bestCount = g, counts[g]
		}
	}
	return best, bestCount > 0
}

func trimBullet(s string, bullets BulletSet) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || (bullets.Contains(r) && !bullets.IsBullet(r))
	})
}
