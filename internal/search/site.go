package search

import (
	"context"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// SiteProvider scopes general-web search to one social platform by prefixing
// the query with a site: operator. With Request.OnlyAccounts it keeps only
// profile-root URLs, i.e. exactly one path segment after the domain.
type SiteProvider struct {
	Platform string // platform name, also used as the record source tag
	Domain   string // e.g. "twitter.com"
	Web      *WebProvider
}

func (s *SiteProvider) Name() string { return s.Platform }

func (s *SiteProvider) Search(ctx context.Context, req Request) (Response, error) {
	scoped := req
	scoped.Query = "site:" + s.Domain + " " + req.Query
	resp, err := s.Web.search(ctx, s.Platform, scoped)
	if err != nil {
		return Response{}, err
	}
	out := resp.Records[:0]
	for _, r := range resp.Records {
		if req.OnlyAccounts && !IsProfileRoot(r.URL, s.Domain) {
			continue
		}
		r.Source = s.Platform
		out = append(out, r)
	}
	resp.Records = out
	return resp, nil
}

// IsProfileRoot reports whether rawURL points at an account root on domain,
// such as https://twitter.com/alice or https://mobile.twitter.com/alice/.
func IsProfileRoot(rawURL, domain string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return false
	}
	if !sameSite(u.Hostname(), domain) {
		return false
	}
	p := strings.TrimSuffix(strings.TrimPrefix(u.Path, "/"), "/")
	return p != "" && !strings.Contains(p, "/")
}

// sameSite compares registrable domains (eTLD+1), falling back to the bare
// host when the public suffix list has no answer.
func sameSite(host, domain string) bool {
	return registrable(host) == registrable(domain)
}

func registrable(host string) string {
	host = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(host)), ".")
	if d, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return d
	}
	return host
}
