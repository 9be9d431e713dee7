package middleware

import (
	"net/http"
	"strings"

	"books_api/internal/model"

	"github.com/gin-gonic/gin"
)

// Rule maps an HTTP method and path pattern to an access requirement.
// An empty Role means the route is public. Method "*" matches any method.
//
// Pattern language: "*" matches exactly one path segment, a trailing "**"
// matches the remainder of the path (including nothing).
type Rule struct {
	Method  string
	Pattern string
	Role    string
}

// Policy is an ordered rule list. Rules are evaluated top to bottom and the
// first rule whose method and pattern match wins; a request matching no rule
// is denied.
type Policy struct {
	rules []Rule
}

// NewPolicy creates a Policy from rules in priority order
func NewPolicy(rules []Rule) *Policy {
	return &Policy{rules: rules}
}

// DefaultPolicy returns the access rules for the books API
func DefaultPolicy() *Policy {
	return NewPolicy([]Rule{
		{Method: http.MethodPost, Pattern: "/api/users/register"},
		{Method: http.MethodGet, Pattern: "/api/v1/books"},
		{Method: http.MethodGet, Pattern: "/api/v1/books/search/**", Role: model.RoleAdmin},
		{Method: http.MethodPost, Pattern: "/api/v1/books", Role: model.RoleUser},
		{Method: http.MethodPut, Pattern: "/api/v1/books/*", Role: model.RoleUser},
		{Method: http.MethodDelete, Pattern: "/api/v1/books/*", Role: model.RoleAdmin},
		{Method: http.MethodGet, Pattern: "/api/users", Role: model.RoleAdmin},
		{Method: http.MethodGet, Pattern: "/actuator/**", Role: model.RoleAdmin},
		{Method: http.MethodGet, Pattern: "/**"},
	})
}

// Decision is the outcome of evaluating a request against the policy
type Decision int

const (
	Allow Decision = iota
	DenyUnauthenticated
	DenyForbidden
)

// Evaluate decides whether a request may proceed. authenticated reports whether
// the caller presented valid credentials, role is the caller's authority.
func (p *Policy) Evaluate(method, path, role string, authenticated bool) Decision {
	for _, rule := range p.rules {
		if rule.Method != "*" && rule.Method != method {
			continue
		}
		if !matchPattern(rule.Pattern, path) {
			continue
		}
		if rule.Role == "" {
			return Allow
		}
		if !authenticated {
			return DenyUnauthenticated
		}
		if role != rule.Role {
			return DenyForbidden
		}
		return Allow
	}
	// Fail closed: no rule matched
	if !authenticated {
		return DenyUnauthenticated
	}
	return DenyForbidden
}

// matchPattern matches a request path against a rule pattern segment by segment
func matchPattern(pattern, path string) bool {
	patSegs := splitPath(pattern)
	pathSegs := splitPath(path)

	for i, seg := range patSegs {
		if seg == "**" {
			// Trailing wildcard consumes the rest, including nothing
			return true
		}
		if i >= len(pathSegs) {
			return false
		}
		if seg != "*" && seg != pathSegs[i] {
			return false
		}
	}
	return len(patSegs) == len(pathSegs)
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// AuthorizeMiddleware enforces the policy centrally; handlers carry no access
// checks of their own.
func AuthorizeMiddleware(policy *Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := ""
		authenticated := false
		if roleVal, exists := c.Get(AuthRoleKey); exists {
			role, _ = roleVal.(string)
			authenticated = true
		}

		switch policy.Evaluate(c.Request.Method, c.Request.URL.Path, role, authenticated) {
		case Allow:
			c.Next()
		case DenyUnauthenticated:
			c.Header("WWW-Authenticate", `Basic realm="books"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		case DenyForbidden:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
		}
	}
}
