package intent

import (
	"fmt"
	"sort"
	"strings"
)

func daysPhrase(days int) string {
	switch {
	case days < -1:
		return fmt.Sprintf("expired %d days ago", -days)
	case days == -1:
		return "expired yesterday"
	case days == 0:
		return "expires today"
	case days == 1:
		return "expires tomorrow"
	default:
		return fmt.Sprintf("expires in %d days", days)
	}
}

func pricePhrase(price *float64) string {
	if price == nil {
		return "no price listed"
	}
	return fmt.Sprintf("price %.2f per unit", *price)
}

func describeItem(item StockItem) string {
	return fmt.Sprintf("%s: %d units, %s, %s",
		item.ProductName, item.Quantity, daysPhrase(item.DaysLeft), pricePhrase(item.Price))
}

// enumerate lista os itens com índice base 1
func enumerate(items []StockItem) string {
	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "\n%d. %s", i+1, describeItem(item))
	}
	return b.String()
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, pluralForm)
}

// sortByDaysLeft ordena por dias restantes, mantendo a ordem original nos empates
func sortByDaysLeft(items []StockItem) []StockItem {
	sorted := append([]StockItem(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DaysLeft < sorted[j].DaysLeft
	})
	return sorted
}

func capResults(items []StockItem) []StockItem {
	if len(items) > maxResults {
		return items[:maxResults]
	}
	return items
}

func cancelledReply(message string) *Reply {
	return &Reply{
		Response: message,
		Action:   ActionCancelled,
		Context:  InitialContext(),
	}
}
