package domain

import (
	"net/netip"
	"slices"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	appvalidation "github.com/allisson/tenantguard/internal/validation"
)

// UsageLimits bounds how heavily a capability may be exercised.
// Enforcement happens outside the matcher (see service.UsageLimiter); the
// limits travel with the grant so verifiers can apply them.
type UsageLimits struct {
	MaxRequestsPerHour  int `json:"max_requests_per_hour,omitempty"`
	MaxTokensPerRequest int `json:"max_tokens_per_request,omitempty"`
}

// Constraints restricts when and from where a capability is valid.
// A capability with no constraints is unconditionally valid while otherwise
// matching.
type Constraints struct {
	ValidUntil     *time.Time   `json:"valid_until,omitempty"`
	IPRestrictions []string     `json:"ip_restrictions,omitempty"`
	UsageLimits    *UsageLimits `json:"usage_limits,omitempty"`
}

// Capability is a grant of one or more actions on a resource pattern.
//
// Resource patterns support a trailing "*" wildcard matching any suffix and
// the universal "*" matching all resources. The action list may contain the
// wildcard action meaning "all actions".
type Capability struct {
	Resource    string       `json:"resource"`
	Actions     []Action     `json:"actions"`
	Constraints *Constraints `json:"constraints,omitempty"`
}

// Validate checks the capability's shape: a non-blank resource pattern, at
// least one action, and well-formed IP restrictions when present.
func (c Capability) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Resource, validation.Required, appvalidation.NotBlank, appvalidation.NoWhitespace),
		validation.Field(&c.Actions, validation.Required, validation.Length(1, 0)),
	)
	if err != nil {
		return appvalidation.WrapValidationError(err)
	}

	if c.Constraints != nil {
		for _, entry := range c.Constraints.IPRestrictions {
			if err := validation.Validate(entry, validation.Required, appvalidation.CIDROrIP); err != nil {
				return appvalidation.WrapValidationError(err)
			}
		}
	}

	return nil
}

// matchResource checks if the requested resource matches the pattern.
//
// Matching is intentionally a literal stripped-wildcard prefix comparison,
// not path-segment-aware: "tenant:acme:*" matches "tenant:acme:conversations"
// and "tenant:acme:" but not "tenant:acmeland:x", because the stripped prefix
// keeps its trailing delimiter. A pattern whose wildcard prefix omits the
// delimiter ("tenant:acme*") will match adjacent namespaces sharing that
// prefix; issuers must write patterns with the delimiter included.
func matchResource(pattern, resource string) bool {
	// Universal wildcard matches everything
	if pattern == WildcardResource {
		return true
	}

	// Trailing wildcard: literal prefix match on the stripped pattern
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(resource, strings.TrimSuffix(pattern, "*"))
	}

	// No wildcard: exact match required
	return pattern == resource
}

// matchAction checks if the requested action is granted verbatim or through
// the wildcard action.
func matchAction(actions []Action, action Action) bool {
	return slices.Contains(actions, action) || slices.Contains(actions, WildcardAction)
}

// satisfied reports whether all present constraints hold at the given time.
// Only valid_until participates in the core check; IP restrictions are
// evaluated by MatchesFromIP and usage limits by the usage limiter.
func (c *Constraints) satisfied(now time.Time) bool {
	if c == nil {
		return true
	}
	if c.ValidUntil != nil && now.After(*c.ValidUntil) {
		return false
	}
	return true
}

// allowsIP reports whether ip is inside any of the restriction entries.
// An absent or empty restriction list allows every address.
func (c *Constraints) allowsIP(ip netip.Addr) bool {
	if c == nil || len(c.IPRestrictions) == 0 {
		return true
	}
	for _, entry := range c.IPRestrictions {
		if prefix, err := netip.ParsePrefix(entry); err == nil {
			if prefix.Contains(ip) {
				return true
			}
			continue
		}
		if addr, err := netip.ParseAddr(entry); err == nil && addr == ip {
			return true
		}
	}
	return false
}

// Matches reports whether any capability in the set grants action on resource
// at the given time.
//
// The check is an OR across capabilities with short-circuit on first match;
// ordering of the set does not affect the result. A capability matches when
// its resource pattern covers the resource, its action set covers the action,
// and all present constraints are satisfied at now.
func Matches(capabilities []Capability, resource string, action Action, now time.Time) bool {
	if resource == "" || action == "" {
		return false
	}

	for i := range capabilities {
		grant := &capabilities[i]
		if !matchResource(grant.Resource, resource) {
			continue
		}
		if !matchAction(grant.Actions, action) {
			continue
		}
		if !grant.Constraints.satisfied(now) {
			continue
		}
		return true
	}

	return false
}

// MatchesFromIP is Matches with IP restrictions additionally enforced for
// callers that know the client address. A capability carrying restrictions
// only matches when ip falls inside one of its listed CIDRs or addresses.
func MatchesFromIP(
	capabilities []Capability,
	resource string,
	action Action,
	ip netip.Addr,
	now time.Time,
) bool {
	if resource == "" || action == "" {
		return false
	}

	for i := range capabilities {
		grant := &capabilities[i]
		if !matchResource(grant.Resource, resource) {
			continue
		}
		if !matchAction(grant.Actions, action) {
			continue
		}
		if !grant.Constraints.satisfied(now) {
			continue
		}
		if !grant.Constraints.allowsIP(ip) {
			continue
		}
		return true
	}

	return false
}
