package fetcher

import "strings"

// Sentiment is the coarse classification of a generated analysis
type Sentiment string

const (
	// SentimentPositive indicates an optimistic analysis
	SentimentPositive Sentiment = "Positive"
	// SentimentNeutral indicates a balanced analysis
	SentimentNeutral Sentiment = "Neutral"
	// SentimentNegative indicates a pessimistic analysis
	SentimentNegative Sentiment = "Negative"
	// SentimentUnknown indicates no label could be parsed from the analysis
	SentimentUnknown Sentiment = "Unknown"
)

// sentimentKeywords are scanned in a fixed order; ties are broken by the
// earliest occurrence in the text.
var sentimentKeywords = []struct {
	word  string
	label Sentiment
}{
	{"positive", SentimentPositive},
	{"negative", SentimentNegative},
	{"neutral", SentimentNeutral},
}

// ParseSentiment extracts a sentiment label from generated analysis text.
// The model is asked to state the sentiment in a labelled section, so the
// region following the last "sentiment" marker is scanned first; if that
// yields nothing, the whole text is scanned. Returns SentimentUnknown when
// no keyword is found.
func ParseSentiment(text string) Sentiment {
	lower := strings.ToLower(text)

	if idx := strings.LastIndex(lower, "sentiment"); idx >= 0 {
		if label, ok := firstKeyword(lower[idx:]); ok {
			return label
		}
	}

	if label, ok := firstKeyword(lower); ok {
		return label
	}

	return SentimentUnknown
}

// firstKeyword returns the sentiment keyword occurring earliest in s
func firstKeyword(s string) (Sentiment, bool) {
	best := SentimentUnknown
	bestIdx := -1

	for _, kw := range sentimentKeywords {
		idx := strings.Index(s, kw.word)
		if idx < 0 {
			continue
		}
		if bestIdx < 0 || idx < bestIdx {
			bestIdx = idx
			best = kw.label
		}
	}

	return best, bestIdx >= 0
}
