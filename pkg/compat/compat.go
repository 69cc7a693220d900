// Package compat decides which component types may be nested inside which.
package compat

// RuleKind tags the variant held by a Rule
type RuleKind int

const (
	AcceptNone RuleKind = iota
	AcceptAny
	AcceptListed
)

func (k RuleKind) String() string {
	switch k {
	case AcceptAny:
		return "any"
	case AcceptListed:
		return "listed"
	default:
		return "none"
	}
}

// Rule describes what a parent type accepts
type Rule struct {
	Kind    RuleKind
	Allowed map[string]bool
}

// Any accepts every child that is not top-level only
func Any() Rule {
	return Rule{Kind: AcceptAny}
}

// Listed accepts only the given child types
func Listed(types ...string) Rule {
	allowed := make(map[string]bool, len(types))
	for _, t := range types {
		allowed[t] = true
	}
	return Rule{Kind: AcceptListed, Allowed: allowed}
}

func (r Rule) accepts(child string) bool {
	switch r.Kind {
	case AcceptAny:
		return true
	case AcceptListed:
		return r.Allowed[child]
	default:
		return false
	}
}

// Relation is the finite parent/child relation between component types
type Relation struct {
	containers   map[string]bool
	rules        map[string]Rule
	topLevelOnly map[string]bool
}

// NewRelation builds a relation from explicit tables
func NewRelation(containers []string, rules map[string]Rule, topLevelOnly []string) *Relation {
	r := &Relation{
		containers:   make(map[string]bool, len(containers)),
		rules:        make(map[string]Rule, len(rules)),
		topLevelOnly: make(map[string]bool, len(topLevelOnly)),
	}
	for _, t := range containers {
		r.containers[t] = true
	}
	for t, rule := range rules {
		r.rules[t] = rule
	}
	for _, t := range topLevelOnly {
		r.topLevelOnly[t] = true
	}
	return r
}

// Containers lists the generic container types
var Containers = []string{
	"container", "container-fluid", "section",
	"row-2col", "row-3col", "row-4col", "row-sidebar",
}

// TopLevelOnlyTypes must never be nested. Navbars are allowed inside containers.
var TopLevelOnlyTypes = []string{
	"footer-simple", "footer-columns", "footer-social",
	"hero-simple", "hero-center", "hero-gradient", "jumbotron", "cta-section",
	"style-modern-hero", "style-dark-hero", "style-feature-grid",
	"style-pricing", "style-testimonial", "style-stats", "style-team",
	"style-faq", "style-cta-banner",
}

// Default returns the builder's standard relation
func Default() *Relation {
	cardContent := []string{"heading-h1", "heading-h2", "heading-h3", "paragraph", "lead", "buttons"}
	rules := map[string]Rule{
		"card-basic":  Listed(append(cardContent, "image")...),
		"card-header": Listed(cardContent...),
		"card-footer": Listed(cardContent...),
	}
	for _, t := range Containers {
		rules[t] = Any()
	}
	return NewRelation(Containers, rules, TopLevelOnlyTypes)
}

// CanAcceptChildren reports whether nodes of type t get a drop slot
func (r *Relation) CanAcceptChildren(t string) bool {
	if r.containers[t] {
		return true
	}
	rule, ok := r.rules[t]
	return ok && rule.Kind != AcceptNone
}

// IsCompatible reports whether child may be nested directly inside parent
func (r *Relation) IsCompatible(parent, child string) bool {
	if r.topLevelOnly[child] {
		return false
	}
	rule, ok := r.rules[parent]
	if !ok {
		return false
	}
	return rule.accepts(child)
}

// TopLevelOnly reports whether t may only be placed on the canvas root
func (r *Relation) TopLevelOnly(t string) bool {
	return r.topLevelOnly[t]
}

// RuleFor returns the rule for a parent type. Unknown types get AcceptNone.
func (r *Relation) RuleFor(t string) Rule {
	if rule, ok := r.rules[t]; ok {
		return rule
	}
	return Rule{Kind: AcceptNone}
}
