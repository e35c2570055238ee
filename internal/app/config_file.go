package app

import (
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "strings"
    "time"

    jsoniter "github.com/json-iterator/go"
    toml "github.com/pelletier/go-toml/v2"
    "golang.org/x/net/publicsuffix"
    yaml "gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FileConfig represents the single-file configuration schema.
// Nested sections improve readability and map naturally to flags/env.
type FileConfig struct {
    Search struct {
        Key       string `yaml:"key" json:"key" toml:"key"`
        BaseURL   string `yaml:"baseURL" json:"baseURL" toml:"baseURL"`
        UserAgent string `yaml:"userAgent" json:"userAgent" toml:"userAgent"`
        Timeout   string `yaml:"timeout" json:"timeout" toml:"timeout"` // Go duration, e.g. "20s"
        Simulate  bool   `yaml:"simulate" json:"simulate" toml:"simulate"`
        Fixture   string `yaml:"fixture" json:"fixture" toml:"fixture"`
        InsecureSkipVerify bool `yaml:"insecureSkipVerify" json:"insecureSkipVerify" toml:"insecureSkipVerify"`
    } `yaml:"search" json:"search" toml:"search"`

    // Sites maps extra platform names to the domain they are scoped to.
    Sites map[string]string `yaml:"sites" json:"sites" toml:"sites"`

    Server struct {
        Addr string `yaml:"addr" json:"addr" toml:"addr"`
    } `yaml:"server" json:"server" toml:"server"`

    Verbose bool `yaml:"verbose" json:"verbose" toml:"verbose"`
}

// LoadConfigFile reads YAML, JSON or TOML into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
    var fc FileConfig
    b, err := os.ReadFile(path)
    if err != nil {
        return fc, err
    }
    switch ext := strings.ToLower(filepath.Ext(path)); ext {
    case ".yaml", ".yml":
        if err := yaml.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse yaml: %w", err)
        }
    case ".json":
        if err := json.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse json: %w", err)
        }
    case ".toml":
        if err := toml.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse toml: %w", err)
        }
    default:
        // Try YAML then JSON
        if err := yaml.Unmarshal(b, &fc); err != nil {
            if jerr := json.Unmarshal(b, &fc); jerr != nil {
                return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
            }
        }
    }
    if _, err := fileTimeout(fc); err != nil {
        return fc, err
    }
    return fc, nil
}

func fileTimeout(fc FileConfig) (time.Duration, error) {
    s := strings.TrimSpace(fc.Search.Timeout)
    if s == "" {
        return 0, nil
    }
    d, err := time.ParseDuration(s)
    if err != nil {
        return 0, fmt.Errorf("config: search.timeout: %w", err)
    }
    return d, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields that
// are currently unset/zero in cfg.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
    if cfg == nil { return }

    if cfg.APIKey == "" && fc.Search.Key != "" { cfg.APIKey = fc.Search.Key }
    if cfg.BaseURL == "" && fc.Search.BaseURL != "" { cfg.BaseURL = fc.Search.BaseURL }
    if cfg.UserAgent == "" && fc.Search.UserAgent != "" { cfg.UserAgent = fc.Search.UserAgent }
    if cfg.Timeout == 0 {
        if d, err := fileTimeout(fc); err == nil && d > 0 { cfg.Timeout = d }
    }
    if !cfg.Simulate && fc.Search.Simulate { cfg.Simulate = true }
    if cfg.FixturePath == "" && fc.Search.Fixture != "" { cfg.FixturePath = fc.Search.Fixture }
    if !cfg.InsecureSkipVerify && fc.Search.InsecureSkipVerify { cfg.InsecureSkipVerify = true }

    if len(fc.Sites) > 0 {
        if cfg.Sites == nil { cfg.Sites = map[string]string{} }
        for k, v := range fc.Sites {
            if _, ok := cfg.Sites[k]; !ok { cfg.Sites[k] = v }
        }
    }

    if cfg.ListenAddr == "" && fc.Server.Addr != "" { cfg.ListenAddr = fc.Server.Addr }
    if !cfg.Verbose && fc.Verbose { cfg.Verbose = true }
}

// reservedPlatforms cannot be redefined as site-scoped providers.
var reservedPlatforms = map[string]bool{"google": true, "news": true, "file": true}

// ValidateConfig performs minimal schema validation. A missing API key is not
// an error here: it surfaces on the first real upstream call.
func ValidateConfig(cfg Config) error {
    if cfg.Timeout < 0 {
        return errors.New("config: negative timeout is not allowed")
    }
    for name, domain := range cfg.Sites {
        n := strings.ToLower(strings.TrimSpace(name))
        if n == "" {
            return errors.New("config: site name is empty")
        }
        if reservedPlatforms[n] {
            return fmt.Errorf("config: site name %q is reserved", name)
        }
        d := strings.ToLower(strings.TrimSpace(domain))
        if d == "" || strings.ContainsAny(d, "/: ") {
            return fmt.Errorf("config: site %q has invalid domain %q", name, domain)
        }
        if _, err := publicsuffix.EffectiveTLDPlusOne(d); err != nil {
            return fmt.Errorf("config: site %q domain %q: %w", name, domain, err)
        }
    }
    return nil
}
