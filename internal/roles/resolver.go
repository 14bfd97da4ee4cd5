// Package roles resolves the role, seniority and location implied by recruiter text.
//
// Each dimension is an ordered rule list evaluated against the lower-cased text.
// The first matching rule wins; when nothing matches the documented default is used.
// Rule order is part of the contract: more specific terms come before generic ones.
package roles

import (
	"regexp"
	"strings"

	"github.com/jonathan/autoreply/internal/types"
)

// Rule maps a pattern to the value it resolves to
type Rule[T any] struct {
	Pattern *regexp.Regexp
	Value   T
}

func rule[T any](pattern string, value T) Rule[T] {
	return Rule[T]{Pattern: regexp.MustCompile(pattern), Value: value}
}

var roleRules = []Rule[types.RoleCategory]{
	rule(`\b(product\s+manager|pm)\b`, types.RoleProductManager),
	rule(`\b(data\s+scientist|ml\s+engineer|machine\s+learning)\b`, types.RoleDataScientist),
	rule(`\b(data\s+engineer)\b`, types.RoleDataEngineer),
	rule(`\b(android|ios|mobile)\b`, types.RoleMobileEngineer),
	rule(`\b(front\s*end|frontend|react|angular)\b`, types.RoleFrontEndEngineer),
	rule(`\b(back\s*end|backend|server|api)\b`, types.RoleBackEndEngineer),
	rule(`\b(full\s*stack)\b`, types.RoleFullStackEngineer),
	rule(`\b(designer|ux|ui)\b`, types.RoleProductDesigner),
	rule(`\b(devops|site reliability|sre)\b`, types.RoleSiteReliability),
	rule(`\b(security engineer|application security)\b`, types.RoleSecurityEngineer),
}

var seniorityRules = []Rule[types.SeniorityLevel]{
	rule(`\b(intern|internship)\b`, types.SeniorityIntern),
	rule(`\b(junior|entry|new grad)\b`, types.SeniorityJunior),
	rule(`\b(mid[-\s]?level|midlevel)\b`, types.SeniorityMid),
	rule(`\b(senior|sr\.)\b`, types.SenioritySenior),
	rule(`\b(staff|principal|architect)\b`, types.SeniorityStaff),
	rule(`\b(manager|lead)\b`, types.SeniorityLead),
	rule(`\b(director|vp|vice president|executive|head)\b`, types.SeniorityExecutive),
}

var locationRules = []Rule[types.LocationCategory]{
	rule(`\b(san\s+francisco|sf|bay\s+area|silicon\s+valley|mountain\s+view|menlo\s+park|sunnyvale)\b`, types.LocationBayArea),
	rule(`\b(new\s+york|nyc|manhattan|brooklyn)\b`, types.LocationNewYork),
	rule(`\b(seattle|redmond|bellevue)\b`, types.LocationSeattle),
	rule(`\b(austin)\b`, types.LocationAustin),
	rule(`\b(denver|boulder)\b`, types.LocationDenver),
	rule(`\b(atlanta)\b`, types.LocationAtlanta),
	rule(`\b(phoenix)\b`, types.LocationPhoenix),
	rule(`\b(salt\s+lake|utah)\b`, types.LocationSaltLakeCity),
	rule(`\b(chicago)\b`, types.LocationChicago),
	rule(`\b(boston)\b`, types.LocationBoston),
	rule(`\b(remote)\b`, types.LocationRemote),
}

// RoleRules returns the role rules in evaluation order.
func RoleRules() []Rule[types.RoleCategory] { return append([]Rule[types.RoleCategory](nil), roleRules...) }

// SeniorityRules returns the seniority rules in evaluation order.
func SeniorityRules() []Rule[types.SeniorityLevel] {
	return append([]Rule[types.SeniorityLevel](nil), seniorityRules...)
}

// LocationRules returns the location rules in evaluation order.
func LocationRules() []Rule[types.LocationCategory] {
	return append([]Rule[types.LocationCategory](nil), locationRules...)
}

// FirstMatch returns the value of the first rule whose pattern matches text, or def.
func FirstMatch[T any](rules []Rule[T], text string, def T) T {
	for _, r := range rules {
		if r.Pattern.MatchString(text) {
			return r.Value
		}
	}
	return def
}

// Combine joins the non-empty fragments with newlines.
func Combine(fragments ...string) string {
	kept := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if f != "" {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, "\n")
}

// Resolve classifies the combined fragments (summary, primary text, context text).
// Empty fragments are skipped. The result is never partially filled.
func Resolve(fragments ...string) types.RoleMetadata {
	combined := Combine(fragments...)
	lower := strings.ToLower(combined)

	return types.RoleMetadata{
		Role:         FirstMatch(roleRules, lower, types.DefaultRole),
		Location:     FirstMatch(locationRules, lower, types.DefaultLocation),
		Seniority:    FirstMatch(seniorityRules, lower, types.DefaultSeniority),
		CombinedText: combined,
	}
}
