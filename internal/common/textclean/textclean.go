// Package textclean turns email HTML into the plain text fed to the cleaning prompt.
package textclean

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLToText keeps paragraph text, one paragraph per line, followed by every table rendered
// as a markdown table. Input without markup is returned trimmed. HTML with neither paragraphs
// nor tables falls back to the document's visible text.
func HTMLToText(content string) string {
	content = strings.TrimSpace(content)
	if content == "" || !strings.Contains(content, "<") {
		return content
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return content
	}
	doc.Find("script, style, head").Remove()

	var paragraphs []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if text := collapse(s.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	var tables []string
	doc.Find("table").Each(func(_ int, s *goquery.Selection) {
		if md := tableToMarkdown(s); md != "" {
			tables = append(tables, md)
		}
	})

	if len(paragraphs) == 0 && len(tables) == 0 {
		return collapseLines(doc.Text())
	}

	var b strings.Builder
	b.WriteString(strings.Join(paragraphs, "\n"))
	for _, t := range tables {
		b.WriteString("\n")
		b.WriteString(t)
	}
	return strings.TrimSpace(b.String())
}

func tableToMarkdown(table *goquery.Selection) string {
	var headers []string
	table.Find("th").Each(func(_ int, s *goquery.Selection) {
		headers = append(headers, collapse(s.Text()))
	})

	var rows [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, collapse(td.Text()))
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})

	if len(headers) == 0 {
		if len(rows) == 0 {
			return ""
		}
		headers, rows = rows[0], rows[1:]
	}

	var b strings.Builder
	writeRow(&b, headers)
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(&b, sep)
	for _, row := range rows {
		writeRow(&b, row)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("| ")
	b.WriteString(strings.Join(cells, " | "))
	b.WriteString(" |\n")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func collapseLines(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = collapse(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
