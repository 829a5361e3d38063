// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Context carries optional auxiliary knowledge for a mapping request.
// Every field may be empty; discovery strategies consume the keys they
// recognize and ignore the rest.
type Context struct {
	// Dependencies maps a feature name to the names of its prerequisites.
	Dependencies map[string][]string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`

	// Constraints maps a constraint name to its required numeric threshold.
	Constraints map[string]float64 `json:"constraints,omitempty" yaml:"constraints,omitempty"`

	// DomainMappings maps a domain name to keyword substrings; attribute
	// keys matching a keyword are tagged with that domain.
	DomainMappings map[string][]string `json:"domain_mappings,omitempty" yaml:"domain_mappings,omitempty"`

	// EthicalConcerns and Risks are advisory notes. They are carried
	// through but never consumed by scoring.
	EthicalConcerns []string `json:"ethical_concerns,omitempty" yaml:"ethical_concerns,omitempty"`
	Risks           []string `json:"risks,omitempty" yaml:"risks,omitempty"`
}
