package extractor

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Keywords returns up to n most frequent terms of text, skipping stop words and one-rune tokens.
func Keywords(text string, n int) []string {
	if n <= 0 {
		return []string{}
	}
	counts := make(map[string]int)
	fields := strings.FieldsFunc(norm.NFC.String(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, field := range fields {
		word := strings.ToLower(field)
		if utf8.RuneCountInString(word) < 2 {
			continue
		}
		if _, ok := stopwords[word]; ok {
			continue
		}
		counts[word]++
	}
	words := make([]string, 0, len(counts))
	for word := range counts {
		words = append(words, word)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > n {
		words = words[:n]
	}
	return words
}
