package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything wrong or
// suspicious about it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	out.Census.BaseURL = strings.TrimRight(strings.TrimSpace(out.Census.BaseURL), "/")
	out.Clean.OnMalformed = strings.ToLower(strings.TrimSpace(out.Clean.OnMalformed))
	out.App.Addr = strings.TrimSpace(out.App.Addr)

	if out.App.Addr == "" {
		res.addErr("app.addr is required")
	}

	if out.Census.BaseURL == "" {
		res.addErr("census.base_url is required")
	} else if u, err := url.Parse(out.Census.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		res.addErr("census.base_url is not a valid URL: %q", out.Census.BaseURL)
	}

	if out.Census.RatePerSec <= 0 {
		res.addErr("census.rate_per_sec must be > 0")
	} else if out.Census.RatePerSec > 10 {
		res.addWarn("census.rate_per_sec is high (%.1f); the Census API throttles aggressive clients.", out.Census.RatePerSec)
	}
	if out.Census.Burst <= 0 {
		res.addErr("census.burst must be > 0")
	}
	if out.Census.TimeoutSeconds <= 0 {
		res.addErr("census.timeout_seconds must be > 0")
	}

	switch out.Clean.OnMalformed {
	case "":
		out.Clean.OnMalformed = MalformedMissing
	case MalformedMissing, MalformedFail:
	default:
		res.addErr("clean.on_malformed must be %q or %q", MalformedMissing, MalformedFail)
	}

	if out.Refresh.IntervalHours <= 0 {
		res.addErr("refresh.interval_hours must be > 0")
	} else if out.Refresh.IntervalHours < 24 {
		res.addWarn("refresh.interval_hours is very low (%d); BDS publishes once a year.", out.Refresh.IntervalHours)
	}

	return out, res
}
