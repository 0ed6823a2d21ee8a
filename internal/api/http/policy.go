package http

import (
	"net/http"
	"path"
	"strings"
)

// Requirement is what a route demands from a caller.
type Requirement int

const (
	// RequirePublic skips authentication entirely. Even a garbage
	// Authorization header passes.
	RequirePublic Requirement = iota
	// RequireAuthenticated accepts any valid bearer token.
	RequireAuthenticated
	// RequireAdmin accepts only accounts with the ADMIN role.
	RequireAdmin
)

func (r Requirement) String() string {
	switch r {
	case RequirePublic:
		return "public"
	case RequireAuthenticated:
		return "authenticated"
	case RequireAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// Rule matches requests by method and path prefix. An empty Method matches
// every method; a Prefix of "/" matches every path.
type Rule struct {
	Method  string
	Prefix  string
	Require Requirement
}

func (r Rule) matches(method, reqPath string) bool {
	if r.Method != "" && r.Method != method {
		return false
	}
	return strings.HasPrefix(reqPath, r.Prefix)
}

// staticExtensions lists asset suffixes served without authentication,
// mirroring what a browser pulls alongside the Swagger UI.
var staticExtensions = map[string]bool{
	".css":  true,
	".js":   true,
	".png":  true,
	".ico":  true,
	".html": true,
	".map":  true,
}

// defaultRules is the access table evaluated top to bottom; the first match
// wins, so order is part of the policy. The DELETE rule sits above the
// public prefixes so no deletion anywhere can evaluate public, and the
// catch-all at the bottom means an unlisted route is authenticated, never
// silently public.
var defaultRules = []Rule{
	{Method: http.MethodDelete, Prefix: "/", Require: RequireAdmin},
	{Prefix: "/swagger/", Require: RequirePublic},
	{Prefix: "/livez", Require: RequirePublic},
	{Prefix: "/readyz", Require: RequirePublic},
	{Prefix: "/api/auth/", Require: RequirePublic},
	{Prefix: "/admin/", Require: RequireAdmin},
	{Prefix: "/api/users/", Require: RequireAuthenticated},
	{Prefix: "/", Require: RequireAuthenticated},
}

// Policy decides what a request must present before it reaches a handler.
type Policy struct {
	rules []Rule
}

// NewPolicy returns the default access policy.
func NewPolicy() *Policy {
	return &Policy{rules: defaultRules}
}

// Evaluate returns the requirement for a request. Static asset paths are
// public regardless of the rule table.
func (p *Policy) Evaluate(method, reqPath string) Requirement {
	if staticExtensions[strings.ToLower(path.Ext(reqPath))] {
		return RequirePublic
	}
	for _, rule := range p.rules {
		if rule.matches(method, reqPath) {
			return rule.Require
		}
	}
	return RequireAuthenticated
}
