package search

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	engineWeb  = "google"
	engineNews = "google_news"

	simulatedTotal = 123
)

var simulatedEpoch = time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC)

// simulate answers an engine request offline. The response depends only on
// engine, q, page and num, so identical requests always produce identical
// items, and distinct pages never share an item index.
func simulate(params url.Values) map[string]any {
	q := params.Get("q")
	page := atoiDefault(params.Get("page"), 1)
	num := atoiDefault(params.Get("num"), 10)
	if page < 1 {
		page = 1
	}
	if num < 1 {
		num = 10
	}
	domain := siteDomain(q)
	news := params.Get("engine") == engineNews

	items := make([]any, 0, num)
	base := (page - 1) * num
	for i := 0; i < num; i++ {
		idx := base + i + 1
		title := fmt.Sprintf("Result %d for %s", idx, q)
		snippet := fmt.Sprintf("This is a mock snippet containing terms of %s.", q)
		date := simulatedEpoch.Add(-time.Duration(idx) * time.Hour).Format("2006-01-02T15:04:05")
		if news {
			items = append(items, map[string]any{
				"title":       title,
				"description": snippet,
				"url":         fmt.Sprintf("https://news.example.com/%d?q=%s", idx, plusQuery(q)),
				"date_utc":    date,
			})
			continue
		}
		link := fmt.Sprintf("https://example.com/%d?q=%s", idx, plusQuery(q))
		if domain != "" {
			link = siteLink(domain, idx)
		}
		items = append(items, map[string]any{
			"title":   title,
			"snippet": snippet,
			"link":    link,
			"date":    date,
		})
	}
	if news {
		return map[string]any{"news_results": items}
	}
	return map[string]any{
		"search_information": map[string]any{"total_results": float64(simulatedTotal)},
		"organic_results":    items,
	}
}

// siteLink alternates profile roots and deeper pages so account-only
// filtering has something to narrow offline.
func siteLink(domain string, idx int) string {
	if idx%2 == 1 {
		return fmt.Sprintf("https://%s/user%d", domain, idx)
	}
	return fmt.Sprintf("https://%s/user%d/status/%d", domain, idx, idx)
}

// siteDomain returns the domain of a leading "site:<domain>" operator.
func siteDomain(q string) string {
	const prefix = "site:"
	if !strings.HasPrefix(q, prefix) {
		return ""
	}
	head, _, _ := strings.Cut(q[len(prefix):], " ")
	return strings.ToLower(head)
}

func plusQuery(q string) string { return strings.ReplaceAll(q, " ", "+") }

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}
