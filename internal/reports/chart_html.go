package reports

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// ChartHTMLBuilder handles chart image HTML generation
type ChartHTMLBuilder struct{}

// NewChartHTMLBuilder creates a new chart HTML builder
func NewChartHTMLBuilder() *ChartHTMLBuilder {
	return &ChartHTMLBuilder{}
}

// BuildChartsHTML creates HTML for chart images using proxy URLs
func (c *ChartHTMLBuilder) BuildChartsHTML(chartFiles []string, folderPath string) string {
	if len(chartFiles) == 0 {
		return ""
	}

	var html strings.Builder
	html.WriteString("<div class=\"charts-section\">\n")
	html.WriteString("<h2>Charts</h2>\n")

	for _, chartFile := range chartFiles {
		filename := filepath.Base(chartFile)
		title := strings.TrimSuffix(filename, filepath.Ext(filename))
		title = ToTitleCase(strings.ReplaceAll(title, "_", " "))

		var imageSrc string
		if folderPath != "" {
			imageSrc = fmt.Sprintf("/files/%s/%s", folderPath, filename)
		} else {
			imageSrc = fmt.Sprintf("/files/%s", filename)
		}

		html.WriteString(fmt.Sprintf(`
		<div class="chart-container">
			<h3>%s</h3>
			<img src="%s" alt="%s" class="chart-image">
		</div>
		`, title, imageSrc, title))
	}

	html.WriteString("</div>\n")
	return html.String()
}

// ToTitleCase capitalizes the first letter of each word
func ToTitleCase(s string) string {
	if s == "" {
		return s
	}

	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		for j := 1; j < len(runes); j++ {
			runes[j] = unicode.ToLower(runes[j])
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
