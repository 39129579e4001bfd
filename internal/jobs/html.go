package jobs

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Tags that never carry posting text
var removeTags = []string{
	"script", "style", "noscript", "iframe", "object", "embed",
	"form", "input", "button", "select", "textarea",
	"nav", "header", "footer", "aside", "menu",
	"svg", "meta", "link", "title", "base",
}

// Containers likely to hold the posting itself, tried in order
var contentSelectors = []string{
	".job-description", ".job-posting", ".job-detail", "[data-testid*='job']",
	"main", "[role='main']", "article",
}

const blockTags = "p, div, section, h1, h2, h3, h4, h5, h6, tr, ul, ol"

var (
	inlineSpace = regexp.MustCompile(`[ \t\x{00a0}]+`)
	boilerplate = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bplease\s+enable\s+javascript\b[^\n]*`),
		regexp.MustCompile(`(?i)\bthis\s+site\s+requires\s+javascript\b[^\n]*`),
		regexp.MustCompile(`(?i)\bjavascript\s+is\s+disabled\b[^\n]*`),
	}
)

// HTMLToText converts a posting's HTML into plain text with one paragraph or
// list item per line. List items are rendered as "• item".
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	for _, tag := range removeTags {
		doc.Find(tag).Remove()
	}

	root := doc.Find("body")
	for _, selector := range contentSelectors {
		if s := doc.Find(selector).First(); len(strings.TrimSpace(s.Text())) > 50 {
			root = s
			break
		}
	}

	root.Find("br").ReplaceWithHtml("\n")
	root.Find("li").Each(func(i int, s *goquery.Selection) {
		s.PrependHtml("\n• ")
		s.AppendHtml("\n")
	})
	root.Find(blockTags).Each(func(i int, s *goquery.Selection) {
		s.PrependHtml("\n")
		s.AppendHtml("\n")
	})

	return cleanText(root.Text()), nil
}

// cleanText collapses runs of spaces and keeps at most one blank line between paragraphs
func cleanText(text string) string {
	for _, re := range boilerplate {
		text = re.ReplaceAllString(text, "")
	}

	var out []string
	blank := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(inlineSpace.ReplaceAllString(line, " "))
		if line == "" {
			blank = len(out) > 0
			continue
		}
		if blank {
			out = append(out, "")
			blank = false
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
