package services

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/Franklivania/tax-yasef-sub001/internal/core/domain"
	"github.com/Franklivania/tax-yasef-sub001/internal/logger"
)

// ElementType classifies a normalised run before tree building.
type ElementType string

// Element types emitted by a Classifier.
const (
	ElementHeading ElementType = "heading"
	ElementBody    ElementType = "body"
)

// Element is one classified run in document order.
type Element struct {
	// Type is heading or body.
	Type ElementType

	// Level is the heading rank (1 = part, 2 = section, 3 = subsection).
	// Zero for body elements.
	Level int

	// Text is the run content.
	Text string

	// Page is the page the run appeared on.
	Page int
}

// FontStats summarises the font-size distribution of a document.
type FontStats struct {
	// Modal is the most common font size, i.e. the body text size.
	Modal float64

	// Max is the largest font size seen.
	Max float64
}

// Classifier turns normalised runs into typed elements. It is a
// pluggable policy: heuristics can be swapped or tuned without
// touching tree building. A classifier never fails; a run matching no
// rule defaults to body.
type Classifier func(runs []domain.TextItem, stats FontStats) []Element

// ComputeFontStats derives the modal and maximum font sizes from the
// normalised runs. Sizes are bucketed to half points so minor kerning
// variation does not fragment the mode.
func ComputeFontStats(runs []domain.TextItem) FontStats {
	counts := make(map[float64]int)
	stats := FontStats{}
	for _, r := range runs {
		size := math.Round(r.FontSize*2) / 2
		counts[size] += len(r.Text)
		if r.FontSize > stats.Max {
			stats.Max = r.FontSize
		}
	}
	best := 0
	for size, n := range counts {
		if n > best || (n == best && size < stats.Modal) {
			best = n
			stats.Modal = size
		}
	}
	if stats.Modal == 0 {
		stats.Modal = 10
	}
	return stats
}

var (
	partPattern       = regexp.MustCompile(`(?i)^(part|chapter|schedule)\s+([ivxlcdm]+|\d+)\b`)
	sectionPattern    = regexp.MustCompile(`(?i)^(section\s+\d+|\d+\.\s+\S)`)
	subsectionPattern = regexp.MustCompile(`^(\d+\.\d+|\(\d+\)|\([a-z]\))\s*\S`)
)

// maxHeadingWords bounds how long a run can be and still qualify as a
// heading candidate.
const maxHeadingWords = 12

// DefaultClassifier is the built-in heading heuristic. It combines
// font size relative to the modal body size, vertical gap from the
// previous run, and numbering/all-caps patterns common in statutes.
func DefaultClassifier(runs []domain.TextItem, stats FontStats) []Element {
	elements := make([]Element, 0, len(runs))
	var prev *domain.TextItem
	for i := range runs {
		run := runs[i]
		text := strings.TrimSpace(run.Text)
		if text == "" {
			continue
		}

		gap := 0.0
		if prev != nil && prev.Page == run.Page {
			gap = prev.Y - run.Y
		}
		prev = &runs[i]

		if level := headingLevel(text, run.FontSize, gap, stats); level > 0 {
			elements = append(elements, Element{Type: ElementHeading, Level: level, Text: text, Page: run.Page})
			continue
		}
		elements = append(elements, Element{Type: ElementBody, Text: text, Page: run.Page})
	}
	logger.Debug("Classified %d runs (%d elements)", len(runs), len(elements))
	return elements
}

// headingLevel returns the heading rank for a run, or 0 for body.
func headingLevel(text string, size, gap float64, stats FontStats) int {
	short := len(strings.Fields(text)) <= maxHeadingWords
	if partPattern.MatchString(text) && short {
		return 1
	}
	if short && size >= stats.Modal*1.5 {
		return 1
	}
	if sectionPattern.MatchString(text) && short {
		return 2
	}
	if short && size >= stats.Modal*1.25 {
		return 2
	}
	if subsectionPattern.MatchString(text) && short {
		return 3
	}
	if short && size >= stats.Modal*1.1 && size > stats.Modal {
		return 3
	}
	if short && isAllCaps(text) {
		return 3
	}
	// A clear vertical break before a short run suggests a heading
	// even at body size.
	if short && gap > stats.Modal*2.5 && !strings.HasSuffix(text, ".") {
		return 3
	}
	return 0
}

func isAllCaps(text string) bool {
	letters := 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return letters >= 3
}

// BuildStructure assembles classified elements into a rooted tree.
// Heading rank implies depth: a deeper heading opens a child; a
// heading at the same or shallower rank first closes all open
// descendants down to that rank. Body text attaches to the most
// recently opened node.
func BuildStructure(elements []Element) *domain.StructureNode {
	root := &domain.StructureNode{Type: domain.NodeTitle, Level: 0}
	stack := []*domain.StructureNode{root}

	for _, el := range elements {
		if el.Type != ElementHeading {
			top := stack[len(stack)-1]
			if top.Text == "" {
				top.Text = el.Text
			} else {
				top.Text += "\n" + el.Text
			}
			continue
		}

		for len(stack) > 1 && stack[len(stack)-1].Level >= el.Level {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]

		node := &domain.StructureNode{
			Type:  nodeTypeForLevel(el.Level),
			Level: el.Level,
			Title: el.Text,
		}
		node.SectionPath = append(append([]string{}, parent.SectionPath...), el.Text)
		parent.Children = append(parent.Children, node)
		stack = append(stack, node)
	}

	return root
}

func nodeTypeForLevel(level int) domain.NodeType {
	switch level {
	case 1:
		return domain.NodePart
	case 2:
		return domain.NodeSection
	default:
		return domain.NodeSubsection
	}
}
