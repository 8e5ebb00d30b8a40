package rag

import (
	"strings"
	"unicode"
)

const (
	lexicalLengthScale = float32(10.0)
	maxLexicalScore    = float32(0.4)
	titleMatchBonus    = float32(0.1)
)

var lexicalStopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "but": {}, "by": {},
	"for": {}, "from": {}, "has": {}, "have": {}, "in": {}, "is": {}, "it": {}, "of": {}, "on": {},
	"or": {}, "the": {}, "to": {}, "was": {}, "were": {}, "with": {},
}

// LexicalScore scores text against query in [0, 0.4] so it can be added to a
// vector similarity score. Query terms found in title earn a bonus.
func LexicalScore(query, text, title string) float32 {
	queryTokens := filterStopwords(tokenize(query))
	if len(queryTokens) == 0 {
		return 0
	}

	var score float32
	if textTokens := tokenize(text); len(textTokens) > 0 {
		freq := make(map[string]int, len(textTokens))
		for _, token := range textTokens {
			freq[token]++
		}
		var matches int
		for _, token := range queryTokens {
			matches += freq[token]
		}
		score = (float32(matches) / (1 + float32(len(textTokens)))) * lexicalLengthScale
	}

	if titleTokens := tokenize(title); len(titleTokens) > 0 {
		titleSet := make(map[string]struct{}, len(titleTokens))
		for _, token := range titleTokens {
			titleSet[token] = struct{}{}
		}
		for _, token := range queryTokens {
			if _, ok := titleSet[token]; ok {
				score += titleMatchBonus
			}
		}
	}

	return min(max(score, 0), maxLexicalScore)
}

func tokenize(text string) []string {
	if text == "" {
		return nil
	}

	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
		} else {
			builder.WriteRune(' ')
		}
	}
	tokens := strings.Fields(builder.String())
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

func filterStopwords(tokens []string) []string {
	result := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, isStop := lexicalStopwords[token]; !isStop {
			result = append(result, token)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
