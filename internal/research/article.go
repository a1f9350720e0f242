package research

import (
	"bytes"
	"fmt"
	"log"
	"net/url"
	"path"
	"strings"
	"unicode/utf8"

	readability "github.com/go-shiori/go-readability"
	"github.com/ledongthuc/pdf"
)

// fillFromArticle is the fallback for pages whose heuristics came up empty:
// readability pulls the main article text and the summarizer condenses it
// into an about block.
func fillFromArticle(res *Result, html string, pageURL *url.URL) {
	article, err := readability.FromReader(strings.NewReader(html), pageURL)
	if err != nil {
		log.Printf("[Research] ⚠️ readability fallback failed for %s: %v", pageURL, err)
		return
	}
	if res.Title == "" {
		res.Title = strings.TrimSpace(article.Title)
	}

	if excerpt := collapseSpace(article.Excerpt); excerpt != "" {
		res.About = truncateRunes(excerpt, aboutRuneCap)
		return
	}

	text := collapseSpace(article.TextContent)
	if text == "" {
		return
	}
	if utf8.RuneCountInString(text) > longTextRunes {
		if summary := Summarize(text, aboutSentences); summary != "" {
			res.About = summary
			return
		}
	}
	res.About = truncateRunes(text, aboutRuneCap)
}

// extractPDF maps PDF text onto a Result so the rest of the pipeline stays
// uniform. The pdf library panics on some malformed files; that surfaces as
// an error here.
func extractPDF(data []byte, pageURL *url.URL) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf extraction failed: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("[Research] ⚠️ PDF page %d of %s: %v", i, pageURL, err)
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	res = &Result{Title: path.Base(pageURL.Path)}
	text := collapseSpace(b.String())
	if text == "" {
		return res, nil
	}

	res.Description = truncateRunes(text, 200)
	if utf8.RuneCountInString(text) > longTextRunes {
		if summary := Summarize(text, aboutSentences); summary != "" {
			res.About = summary
			return res, nil
		}
	}
	res.About = truncateRunes(text, aboutRuneCap)
	return res, nil
}
