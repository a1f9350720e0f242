package research

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// aboutSelectors are tried in order; the first block with enough text wins.
var aboutSelectors = []string{"#about", ".about", `[class*="about"]`, "section"}

// techVocabulary maps script-src substrings to the technology they indicate.
var techVocabulary = []struct {
	substr string
	name   string
}{
	{"react", "React"},
	{"vue", "Vue"},
	{"angular", "Angular"},
	{"stripe", "Stripe"},
	{"intercom", "Intercom"},
	{"hubspot", "HubSpot"},
}

// extractHTML runs the heuristics over the fetched markup: meta description,
// title, about block, technology hints. When neither a description nor an
// about block turns up, readability takes a second pass.
func extractHTML(html string, pageURL *url.URL) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	res := &Result{}
	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		res.Description = strings.TrimSpace(desc)
	}
	res.Title = strings.TrimSpace(doc.Find("title").First().Text())
	res.About = extractAbout(doc)
	res.TechHints = extractTechHints(doc)

	if res.Description == "" && res.About == "" {
		fillFromArticle(res, html, pageURL)
	}
	return res, nil
}

// extractAbout returns the first plausible about-ish text block. Text is
// whitespace-collapsed, capped at 500 runes, and must still exceed 100 runes
// to be accepted.
func extractAbout(doc *goquery.Document) string {
	for _, selector := range aboutSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		text := truncateRunes(collapseSpace(sel.Text()), aboutRuneCap)
		if utf8.RuneCountInString(text) > aboutRuneMin {
			return text
		}
	}
	return ""
}

// extractTechHints matches script sources against the fixed vocabulary,
// deduplicating while preserving first-seen order.
func extractTechHints(doc *goquery.Document) []string {
	seen := map[string]bool{}
	var hints []string
	doc.Find("script[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		src = strings.ToLower(src)
		for _, tech := range techVocabulary {
			if strings.Contains(src, tech.substr) && !seen[tech.name] {
				seen[tech.name] = true
				hints = append(hints, tech.name)
			}
		}
	})
	return hints
}

var spaceRe = regexp.MustCompile(`\s+`)

func collapseSpace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
