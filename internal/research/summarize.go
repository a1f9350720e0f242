package research

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

var (
	sentenceRe = regexp.MustCompile(`[^.!?]*[.!?]`)
	wordRe     = regexp.MustCompile(`\pL+`)
)

// Summarize condenses long text into a short, non-repetitive summary of at
// most maxSentences sentences. If aggressive filtering yields nothing, it
// falls back to the first N sentences.
func Summarize(text string, maxSentences int) string {
	text = collapseSpace(text)
	if text == "" || maxSentences <= 0 {
		return ""
	}

	raw := sentenceRe.FindAllString(text, -1)
	if len(raw) == 0 {
		return truncateRunes(text, aboutRuneCap)
	}

	// Global word frequency as a simple importance estimate.
	freq := map[string]int{}
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if len(w) > 2 {
			freq[w]++
		}
	}

	type sentence struct {
		text  string
		idx   int
		score int
	}
	var sentences []sentence
	for i, s := range raw {
		score := 0
		for _, w := range wordRe.FindAllString(strings.ToLower(s), -1) {
			score += freq[w]
		}
		sentences = append(sentences, sentence{text: strings.TrimSpace(s), idx: i, score: score})
	}

	// Rank by score descending; candidate pool wider than the final N.
	sort.Slice(sentences, func(i, j int) bool { return sentences[i].score > sentences[j].score })
	pool := maxSentences * 3
	if pool > len(sentences) {
		pool = len(sentences)
	}
	candidates := sentences[:pool]

	// Drop extremes and near-duplicates.
	const (
		minRunes  = 40
		maxRunes  = 400
		simThresh = 0.7
	)
	chosen := make([]sentence, 0, maxSentences)
	for _, c := range candidates {
		runes := utf8.RuneCountInString(c.text)
		if runes < minRunes || runes > maxRunes {
			continue
		}
		dup := false
		for _, d := range chosen {
			if jaccardSimilarity(c.text, d.text) > simThresh {
				dup = true
				break
			}
		}
		if !dup {
			chosen = append(chosen, c)
			if len(chosen) == maxSentences {
				break
			}
		}
	}

	if len(chosen) == 0 {
		n := maxSentences
		if n > len(raw) {
			n = len(raw)
		}
		return strings.TrimSpace(strings.Join(raw[:n], " "))
	}

	// Restore original order.
	sort.Slice(chosen, func(i, j int) bool { return chosen[i].idx < chosen[j].idx })
	out := make([]string, 0, len(chosen))
	for _, c := range chosen {
		out = append(out, c.text)
	}
	return strings.TrimSpace(strings.Join(out, " "))
}

func jaccardSimilarity(a, b string) float64 {
	setA := map[string]struct{}{}
	setB := map[string]struct{}{}
	for _, w := range wordRe.FindAllString(strings.ToLower(a), -1) {
		setA[w] = struct{}{}
	}
	for _, w := range wordRe.FindAllString(strings.ToLower(b), -1) {
		setB[w] = struct{}{}
	}

	inter := 0
	union := len(setA)
	for w := range setB {
		if _, ok := setA[w]; ok {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
