package search

import "context"

// NewsProvider returns results from the google_news engine. News responses
// carry no separate total, so the hint is the number of items returned.
type NewsProvider struct {
	Client *Client
}

func (n *NewsProvider) Name() string { return "news" }

func (n *NewsProvider) Search(ctx context.Context, req Request) (Response, error) {
	req = req.withDefaults()
	data, err := n.Client.Get(ctx, n.Name(), engineParams(engineNews, req))
	if err != nil {
		return Response{}, err
	}
	items := firstItems(data, "news_results", "news")
	return Response{
		Records: NormalizeAll(items, n.Name()),
		Total:   len(items),
	}, nil
}
