package app

import (
    "os"
    "strings"
    "time"
)

// apiKeyEnv lists the accepted credential variables, first non-empty wins.
var apiKeyEnv = []string{"SEARCHAPI_IO_KEY", "SEARCHAPI_KEY", "SEARCH_API_KEY"}

func envAPIKey() string {
    for _, k := range apiKeyEnv {
        if v := strings.TrimSpace(os.Getenv(k)); v != "" {
            return v
        }
    }
    return ""
}

// listenAddrFromEnv prefers LISTEN_ADDR and falls back to PORT.
func listenAddrFromEnv() string {
    if v := strings.TrimSpace(os.Getenv("LISTEN_ADDR")); v != "" {
        return v
    }
    if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
        return ":" + v
    }
    return ""
}

// parseSites reads "name=domain,name=domain".
func parseSites(s string) map[string]string {
    out := map[string]string{}
    for _, part := range strings.Split(s, ",") {
        name, domain, ok := strings.Cut(part, "=")
        if !ok {
            continue
        }
        name, domain = strings.TrimSpace(name), strings.TrimSpace(domain)
        if name != "" && domain != "" {
            out[name] = domain
        }
    }
    return out
}

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
    if cfg == nil { return }

    if cfg.APIKey == "" {
        cfg.APIKey = envAPIKey()
    }
    if cfg.BaseURL == "" {
        cfg.BaseURL = os.Getenv("SEARCHAPI_BASE_URL")
    }
    if cfg.FixturePath == "" {
        cfg.FixturePath = os.Getenv("SEARCH_FIXTURE_FILE")
    }
    if cfg.ListenAddr == "" {
        cfg.ListenAddr = listenAddrFromEnv()
    }
    if cfg.Timeout == 0 {
        if s := os.Getenv("SEARCH_TIMEOUT"); s != "" {
            if d, err := time.ParseDuration(s); err == nil {
                cfg.Timeout = d
            }
        }
    }
    if s := strings.TrimSpace(os.Getenv("SEARCH_SITES")); s != "" {
        if cfg.Sites == nil { cfg.Sites = map[string]string{} }
        for k, v := range parseSites(s) {
            if _, ok := cfg.Sites[k]; !ok {
                cfg.Sites[k] = v
            }
        }
    }

    // Booleans
    setBool := func(dst *bool, envKey string) {
        if *dst { return }
        if s := strings.ToLower(strings.TrimSpace(os.Getenv(envKey))); s != "" {
            if s == "1" || s == "true" || s == "yes" || s == "on" {
                *dst = true
            }
        }
    }
    setBool(&cfg.Simulate, "DEMO_MODE")
    setBool(&cfg.Verbose, "VERBOSE")
    setBool(&cfg.InsecureSkipVerify, "SEARCH_INSECURE_SKIP_VERIFY")
}

// ApplyEnvOverrides forcefully overrides cfg fields with environment variables
// when the corresponding env vars are set. This is used to let env take
// precedence over values coming from a config file while still allowing flags
// to remain highest precedence.
func ApplyEnvOverrides(cfg *Config) {
    if cfg == nil { return }

    if v := envAPIKey(); v != "" { cfg.APIKey = v }
    if v := os.Getenv("SEARCHAPI_BASE_URL"); v != "" { cfg.BaseURL = v }
    if v := os.Getenv("SEARCH_FIXTURE_FILE"); v != "" { cfg.FixturePath = v }
    if v := listenAddrFromEnv(); v != "" { cfg.ListenAddr = v }

    if s := os.Getenv("SEARCH_TIMEOUT"); s != "" {
        if d, err := time.ParseDuration(s); err == nil {
            cfg.Timeout = d
        }
    }
    if s := strings.TrimSpace(os.Getenv("SEARCH_SITES")); s != "" {
        if cfg.Sites == nil { cfg.Sites = map[string]string{} }
        for k, v := range parseSites(s) {
            cfg.Sites[k] = v
        }
    }

    // Booleans override when env present and truthy/falsey
    setBool := func(dst *bool, envKey string) {
        if s := strings.ToLower(strings.TrimSpace(os.Getenv(envKey))); s != "" {
            switch s {
            case "1", "true", "yes", "on":
                *dst = true
            case "0", "false", "no", "off":
                *dst = false
            }
        }
    }
    setBool(&cfg.Simulate, "DEMO_MODE")
    setBool(&cfg.Verbose, "VERBOSE")
    setBool(&cfg.InsecureSkipVerify, "SEARCH_INSECURE_SKIP_VERIFY")
}
