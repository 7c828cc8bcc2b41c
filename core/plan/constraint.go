package plan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mfaivrep/planif/core/model"
)

// Well-known parameter ids in requirement strings.
const (
	// ParamRole requires exact equality with the resource's role.
	ParamRole = "115"
	// ParamLevel constrains the resource's qualification level.
	ParamLevel = "2673"
	// Wildcard marks a requirement value that always passes.
	Wildcard = "%"
)

// Requirement is one parsed resource-eligibility rule. The optional
// range applies to numeric parameters; either bound may be absent.
type Requirement struct {
	ParamID string
	Value   string
	HasMin  bool
	Min     float64
	HasMax  bool
	Max     float64
}

// ParseRequirements parses a comma-separated requirement string of
// entries shaped id:value or id:value(min-max). Malformed fragments are
// skipped and returned separately so the caller can warn about them;
// they are treated as "no constraint" rather than failing the item.
func ParseRequirements(s string) ([]Requirement, []string) {
	var reqs []Requirement
	var bad []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		req, err := parseRequirement(part)
		if err != nil {
			bad = append(bad, part)
			continue
		}
		reqs = append(reqs, req)
	}
	return reqs, bad
}

func parseRequirement(s string) (Requirement, error) {
	var req Requirement
	id, rest, ok := strings.Cut(s, ":")
	if !ok || id == "" {
		return req, fmt.Errorf("requirement %q: missing ':'", s)
	}
	req.ParamID = id
	req.Value = rest

	open := strings.Index(rest, "(")
	if open < 0 {
		return req, nil
	}
	if !strings.HasSuffix(rest, ")") {
		return req, fmt.Errorf("requirement %q: unclosed range", s)
	}
	req.Value = rest[:open]
	rng := rest[open+1 : len(rest)-1]
	low, high, ok := strings.Cut(rng, "-")
	if !ok {
		return req, fmt.Errorf("requirement %q: range needs '-'", s)
	}
	if low != "" {
		min, err := strconv.ParseFloat(low, 64)
		if err != nil {
			return req, fmt.Errorf("requirement %q: %w", s, err)
		}
		req.HasMin = true
		req.Min = min
	}
	if high != "" {
		max, err := strconv.ParseFloat(high, 64)
		if err != nil {
			return req, fmt.Errorf("requirement %q: %w", s, err)
		}
		req.HasMax = true
		req.Max = max
	}
	return req, nil
}

// wildcardSatisfied holds the current wildcard policy: a '%' value
// always passes, without verifying the resource actually carries some
// value for the attribute. Kept as a named policy so it can be
// revisited without touching the matching control flow.
func wildcardSatisfied(req Requirement) bool {
	return req.Value == Wildcard
}

// rolelessSatisfiesRole holds the policy for resources without a role:
// they automatically satisfy role requirements.
func rolelessSatisfiesRole(r *model.ResourceProfile) bool {
	return r.Role == ""
}

// Matches reports whether the resource satisfies every requirement. An
// empty requirement list always matches; a single failing requirement
// rejects the resource.
func Matches(r *model.ResourceProfile, reqs []Requirement) bool {
	for _, req := range reqs {
		if !satisfies(r, req) {
			return false
		}
	}
	return true
}

func satisfies(r *model.ResourceProfile, req Requirement) bool {
	if wildcardSatisfied(req) {
		return true
	}
	switch req.ParamID {
	case ParamRole:
		if rolelessSatisfiesRole(r) {
			return true
		}
		return r.Role == req.Value
	case ParamLevel:
		if req.HasMin || req.HasMax {
			if req.HasMin && r.Level < req.Min {
				return false
			}
			if req.HasMax && r.Level > req.Max {
				return false
			}
			return true
		}
		want, err := strconv.ParseFloat(req.Value, 64)
		if err != nil {
			return false
		}
		return r.Level == want
	default:
		// Unknown parameter ids pass for forward compatibility.
		return true
	}
}
