package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Franklivania/tax-yasef-sub001/internal/core/domain"
)

func TestNormalizePages_MergesRunsOnOneLine(t *testing.T) {
	pages := []domain.ExtractedPage{
		{Number: 1, Items: []domain.TextItem{
			{Text: "Companies", FontSize: 10, X: 50, Y: 700, Page: 1},
			{Text: "Income", FontSize: 10, X: 120, Y: 700.5, Page: 1},
			{Text: "Tax", FontSize: 10, X: 170, Y: 700, Page: 1},
		}},
	}

	runs := NormalizePages(pages)

	require.Len(t, runs, 1)
	assert.Equal(t, "Companies Income Tax", runs[0].Text)
	assert.Equal(t, 1, runs[0].Page)
}

func TestNormalizePages_ReadingOrderTopDown(t *testing.T) {
	pages := []domain.ExtractedPage{
		{Number: 1, Items: []domain.TextItem{
			{Text: "second line", FontSize: 10, X: 50, Y: 650, Page: 1},
			{Text: "first line", FontSize: 10, X: 50, Y: 700, Page: 1},
		}},
	}

	runs := NormalizePages(pages)

	require.Len(t, runs, 2)
	assert.Equal(t, "first line", runs[0].Text)
	assert.Equal(t, "second line", runs[1].Text)
}

func TestNormalizePages_JoinsHyphenBreaks(t *testing.T) {
	pages := []domain.ExtractedPage{
		{Number: 1, Items: []domain.TextItem{
			{Text: "the assess-", FontSize: 10, X: 50, Y: 700, Page: 1},
			{Text: "ment of profits", FontSize: 10, X: 50, Y: 688, Page: 1},
		}},
	}

	runs := NormalizePages(pages)

	require.Len(t, runs, 1)
	assert.Equal(t, "the assessment of profits", runs[0].Text)
}

func TestNormalizePages_CollapsesWhitespace(t *testing.T) {
	pages := []domain.ExtractedPage{
		{Number: 1, Items: []domain.TextItem{
			{Text: "  total \t profits  ", FontSize: 10, X: 50, Y: 700, Page: 1},
		}},
	}

	runs := NormalizePages(pages)

	require.Len(t, runs, 1)
	assert.Equal(t, "total profits", runs[0].Text)
}

func TestNormalizePages_StripsRepeatedHeaders(t *testing.T) {
	header := domain.TextItem{Text: "Companies Income Tax Act", FontSize: 8, X: 50, Y: 800}
	pages := make([]domain.ExtractedPage, 0, 4)
	for p := 1; p <= 4; p++ {
		h := header
		h.Page = p
		pages = append(pages, domain.ExtractedPage{Number: p, Items: []domain.TextItem{
			h,
			{Text: fmt.Sprintf("body text unique to page %c", 'a'+p), FontSize: 10, X: 50, Y: 700, Page: p},
		}})
	}

	runs := NormalizePages(pages)

	require.Len(t, runs, 4)
	for _, r := range runs {
		assert.NotEqual(t, header.Text, r.Text)
	}
}

func TestNormalizePages_DropsPageNumbers(t *testing.T) {
	pages := []domain.ExtractedPage{
		{Number: 1, Items: []domain.TextItem{
			{Text: "actual content here", FontSize: 10, X: 50, Y: 700, Page: 1},
			{Text: "12", FontSize: 8, X: 300, Y: 40, Page: 1},
		}},
	}

	runs := NormalizePages(pages)

	require.Len(t, runs, 1)
	assert.Equal(t, "actual content here", runs[0].Text)
}

func TestNormalizePages_EmptyPageYieldsNothing(t *testing.T) {
	pages := []domain.ExtractedPage{{Number: 1}, {Number: 2}}

	assert.Empty(t, NormalizePages(pages))
}
