package classify

import (
	"strings"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
)

// NameRule matches a case-insensitive substring of a resource name.
type NameRule struct {
	Pattern  string
	Category domain.Category
}

// Rules is the immutable classification rule set. Kind rules take precedence
// over name rules; name rules apply to Network and Subnet records only and
// are evaluated in order, first match wins.
type Rules struct {
	Kinds    map[domain.ResourceKind]domain.Category
	Names    []NameRule
	Fallback domain.Category
}

// DefaultRules returns the built-in rule set.
func DefaultRules() Rules {
	return Rules{
		Kinds: map[domain.ResourceKind]domain.Category{
			domain.KindVirtualMachine: domain.CategoryCompute,
			domain.KindLoadBalancer:   domain.CategoryLoadBalancer,
			domain.KindGateway:        domain.CategoryGateway,
			domain.KindFirewall:       domain.CategoryFirewall,
		},
		Names: []NameRule{
			{Pattern: "web", Category: domain.CategoryWeb},
			{Pattern: "frontend", Category: domain.CategoryWeb},
			{Pattern: "app", Category: domain.CategoryApp},
			{Pattern: "application", Category: domain.CategoryApp},
			{Pattern: "db", Category: domain.CategoryDatabase},
			{Pattern: "data", Category: domain.CategoryDatabase},
			{Pattern: "sql", Category: domain.CategoryDatabase},
		},
		Fallback: domain.CategoryGeneric,
	}
}

// Classifier maps resource records to visual categories. It is a pure, total
// function over records: every record maps to some category.
type Classifier struct {
	rules Rules
}

// New creates a classifier with the given rule set.
func New(rules Rules) *Classifier {
	return &Classifier{rules: rules}
}

// Classify returns the category for a record. Never fails; records matching
// no rule fall back to the configured fallback category.
func (c *Classifier) Classify(r domain.ResourceRecord) domain.Category {
	if cat, ok := c.rules.Kinds[r.Kind]; ok {
		return cat
	}
	if r.Kind == domain.KindNetwork || r.Kind == domain.KindSubnet {
		name := strings.ToLower(r.Name)
		for _, rule := range c.rules.Names {
			if strings.Contains(name, strings.ToLower(rule.Pattern)) {
				return rule.Category
			}
		}
	}
	return c.rules.Fallback
}
