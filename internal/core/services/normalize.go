package services

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/Franklivania/tax-yasef-sub001/internal/core/domain"
	"github.com/Franklivania/tax-yasef-sub001/internal/logger"
)

// lineTolerance is the vertical distance within which two runs are
// considered part of the same line.
const lineTolerance = 2.0

var pageNumberPattern = regexp.MustCompile(`(?i)^(page\s+)?-?\s*\d+\s*-?$`)

// NormalizePages merges raw positioned runs into line-level runs,
// collapses whitespace, joins hyphenation breaks and removes running
// headers/footers repeated across pages. It makes no structural
// decisions: classification happens in the detector.
func NormalizePages(pages []domain.ExtractedPage) []domain.TextItem {
	perPage := make([][]domain.TextItem, 0, len(pages))
	for _, page := range pages {
		lines := mergeLines(page)
		lines = joinHyphenBreaks(lines)
		perPage = append(perPage, lines)
	}

	perPage = stripRepeatedEdges(perPage)

	var out []domain.TextItem
	for _, lines := range perPage {
		for _, line := range lines {
			if pageNumberPattern.MatchString(line.Text) {
				continue
			}
			out = append(out, line)
		}
	}
	logger.Debug("Normalised %d pages into %d runs", len(pages), len(out))
	return out
}

// mergeLines groups a page's runs by vertical position and joins each
// group into a single line-level run in reading order.
func mergeLines(page domain.ExtractedPage) []domain.TextItem {
	items := make([]domain.TextItem, 0, len(page.Items))
	for _, it := range page.Items {
		if strings.TrimSpace(it.Text) == "" {
			continue
		}
		items = append(items, it)
	}
	if len(items) == 0 {
		return nil
	}

	// PDF coordinates grow upward, so reading order is descending Y.
	sort.SliceStable(items, func(i, j int) bool {
		if math.Abs(items[i].Y-items[j].Y) > lineTolerance {
			return items[i].Y > items[j].Y
		}
		return items[i].X < items[j].X
	})

	var lines []domain.TextItem
	for _, it := range items {
		if len(lines) > 0 && math.Abs(lines[len(lines)-1].Y-it.Y) <= lineTolerance {
			last := &lines[len(lines)-1]
			last.Text = joinRuns(last.Text, it.Text)
			if it.FontSize > last.FontSize {
				last.FontSize = it.FontSize
			}
			continue
		}
		lines = append(lines, domain.TextItem{
			Text:     collapseWhitespace(it.Text),
			FontSize: it.FontSize,
			X:        it.X,
			Y:        it.Y,
			Page:     page.Number,
		})
	}
	return lines
}

// joinHyphenBreaks merges a line ending in a hyphen with the next line
// when the continuation starts with a lowercase letter.
func joinHyphenBreaks(lines []domain.TextItem) []domain.TextItem {
	if len(lines) < 2 {
		return lines
	}
	out := lines[:0]
	for _, line := range lines {
		if len(out) > 0 {
			prev := &out[len(out)-1]
			if strings.HasSuffix(prev.Text, "-") && startsLower(line.Text) {
				prev.Text = strings.TrimSuffix(prev.Text, "-") + line.Text
				continue
			}
		}
		out = append(out, line)
	}
	return out
}

// stripRepeatedEdges removes first/last lines whose text repeats on at
// least half the pages. With fewer than three pages there is not
// enough signal to call anything a running header.
func stripRepeatedEdges(perPage [][]domain.TextItem) [][]domain.TextItem {
	if len(perPage) < 3 {
		return perPage
	}
	counts := make(map[string]int)
	for _, lines := range perPage {
		if len(lines) == 0 {
			continue
		}
		counts[lines[0].Text]++
		if len(lines) > 1 {
			counts[lines[len(lines)-1].Text]++
		}
	}
	threshold := (len(perPage) + 1) / 2
	repeated := func(text string) bool {
		return counts[text] >= threshold
	}

	for i, lines := range perPage {
		for len(lines) > 0 && repeated(lines[0].Text) {
			lines = lines[1:]
		}
		for len(lines) > 0 && repeated(lines[len(lines)-1].Text) {
			lines = lines[:len(lines)-1]
		}
		perPage[i] = lines
	}
	return perPage
}

func joinRuns(a, b string) string {
	b = collapseWhitespace(b)
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + " " + b
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func startsLower(s string) bool {
	for _, r := range s {
		return unicode.IsLower(r)
	}
	return false
}
