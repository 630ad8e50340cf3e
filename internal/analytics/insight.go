package analytics

import (
	"fmt"
	"strings"

	"github.com/stockpilot/stockpilot/internal/models"
)

// Sentiment labels returned by AnalyzeSentiment.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// insightCategory pairs a keyword set with its templated answer. Categories
// are matched in declaration order; the first hit wins.
type insightCategory struct {
	name     string
	keywords []string
	answer   func(models.Summary) string
}

var insightCategories = []insightCategory{
	{
		name:     "stock",
		keywords: []string{"stock", "inventory"},
		answer: func(s models.Summary) string {
			if s.LowStockItems > 0 {
				return fmt.Sprintf("You are tracking %d products and %d of them are running low. Check the reorder suggestions before they sell out.", s.TotalProducts, s.LowStockItems)
			}
			return fmt.Sprintf("You are tracking %d products and none are below their reorder point. Inventory looks healthy.", s.TotalProducts)
		},
	},
	{
		name:     "sales",
		keywords: []string{"sales", "revenue"},
		answer: func(s models.Summary) string {
			return fmt.Sprintf("Total revenue to date is %.2f. Sales moved %+.1f%% against the previous period.", s.TotalRevenue, s.RecentSalesDelta)
		},
	},
	{
		name:     "forecast",
		keywords: []string{"predict", "forecast"},
		answer: func(s models.Summary) string {
			return fmt.Sprintf("With revenue at %.2f and a recent change of %+.1f%%, the forecaster projects the trend forward. See the forecast report for per-period numbers.", s.TotalRevenue, s.RecentSalesDelta)
		},
	},
	{
		name:     "products",
		keywords: []string{"product", "item"},
		answer: func(s models.Summary) string {
			return fmt.Sprintf("The catalog has %d products; %d need restocking soon.", s.TotalProducts, s.LowStockItems)
		},
	},
	{
		name:     "help",
		keywords: []string{"help", "how"},
		answer: func(models.Summary) string {
			return "Ask me about stock levels, sales and revenue, forecasts, or specific products."
		},
	},
}

// Respond matches the query against the fixed keyword categories (stock,
// sales, forecast, products, help — in that priority order) and renders the
// first matching template over the store summary. Queries matching no
// category get a generic echo-back pointer to the supported topics.
func Respond(query string, summary models.Summary) string {
	q := strings.ToLower(query)
	for _, cat := range insightCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(q, kw) {
				return cat.answer(summary)
			}
		}
	}
	return fmt.Sprintf("I didn't catch a topic in %q. I can answer questions about stock, sales, forecasts, and products.", query)
}

// Keyword tables for AnalyzeSentiment. Matching is case-insensitive and
// substring-based, not word-boundary aware — "update" counts as "up".
// That naivety is a documented limitation of the scorer.
var (
	positiveWords = []string{"good", "great", "up", "increase", "profit", "growth", "success"}
	negativeWords = []string{"bad", "poor", "down", "decrease", "loss", "decline", "problem"}
)

// AnalyzeSentiment scores text by occurrences of the positive keyword set
// minus occurrences of the negative set, returning "positive", "negative",
// or "neutral" for a zero net score.
func AnalyzeSentiment(text string) string {
	t := strings.ToLower(text)
	var score int
	for _, w := range positiveWords {
		score += strings.Count(t, w)
	}
	for _, w := range negativeWords {
		score -= strings.Count(t, w)
	}
	switch {
	case score > 0:
		return SentimentPositive
	case score < 0:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}
