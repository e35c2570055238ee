package search

import (
	"sort"
	"strings"
)

// DefaultSites maps platform names to the domains their site-scoped
// providers search. Configured sites are merged on top.
var DefaultSites = map[string]string{
	"twitter": "twitter.com",
}

// Registry resolves platform names to providers. It is read-only after
// construction.
type Registry struct {
	providers map[string]Provider
}

// RegistryOptions configures the built-in providers.
type RegistryOptions struct {
	Client      *Client
	Sites       map[string]string // platform name -> domain
	FixturePath string            // registers the "file" provider when set
}

// NewRegistry registers google, news, every site-scoped platform and,
// optionally, the fixture provider.
func NewRegistry(opt RegistryOptions) *Registry {
	r := &Registry{providers: map[string]Provider{}}
	web := &WebProvider{Client: opt.Client}
	r.Register(web)
	r.Register(&NewsProvider{Client: opt.Client})
	sites := map[string]string{}
	for k, v := range DefaultSites {
		sites[k] = v
	}
	for k, v := range opt.Sites {
		sites[strings.ToLower(strings.TrimSpace(k))] = strings.ToLower(strings.TrimSpace(v))
	}
	for name, domain := range sites {
		if name == "" || domain == "" {
			continue
		}
		r.Register(&SiteProvider{Platform: name, Domain: domain, Web: web})
	}
	if strings.TrimSpace(opt.FixturePath) != "" {
		r.Register(&FileProvider{Path: opt.FixturePath})
	}
	return r
}

// Register adds or replaces a provider under its Name.
func (r *Registry) Register(p Provider) {
	if r.providers == nil {
		r.providers = map[string]Provider{}
	}
	r.providers[p.Name()] = p
}

// Lookup returns the provider for a platform name. Unknown names report false.
func (r *Registry) Lookup(name string) (Provider, bool) {
	if r == nil {
		return nil, false
	}
	p, ok := r.providers[name]
	return p, ok
}

// Names lists registered platform names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.providers))
	for n := range r.providers {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
