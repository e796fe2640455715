// Package rules loads named patterns from YAML files for the rure command.
//
// A rules file looks like:
//
//	rules:
//	  - id: ipv4
//	    name: IPv4 address
//	    pattern: '\b(?:\d{1,3}\.){3}\d{1,3}\b'
//	    examples:
//	      - 'host 10.0.0.1 is up'
//	    negative_examples:
//	      - 'version 1.2.3'
package rules

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	capi "github.com/coregx/coregex-capi"
)

// ErrNoRules is returned when a rules file has an empty "rules" list.
var ErrNoRules = errors.New("no rules found in YAML")

// Rule is a named pattern with optional self-test strings.
type Rule struct {
	ID               string
	Name             string
	Pattern          string
	Description      string
	Examples         []string
	NegativeExamples []string
}

// Compiled is a Rule together with its compiled pattern.
type Compiled struct {
	*Rule
	Regex *capi.Regex
}

// Load parses rules from YAML bytes. It does not validate them.
func Load(data []byte) ([]*Rule, error) {
	var f yamlRulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(f.Rules) == 0 {
		return nil, ErrNoRules
	}

	out := make([]*Rule, 0, len(f.Rules))
	for _, yr := range f.Rules {
		out = append(out, convertYAMLRule(yr))
	}
	return out, nil
}

// LoadFile reads and parses a rules file.
func LoadFile(path string) ([]*Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	rs, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rs, nil
}

// Validate checks required fields, compiles the pattern and runs the
// rule's examples against it.
func Validate(r *Rule) error {
	c, err := compile(r)
	if err != nil {
		return err
	}
	defer c.Regex.Free()
	return c.selfTest()
}

// Compile validates every rule and returns them compiled, in order. IDs must
// be unique. On error nothing is left allocated.
func Compile(rs []*Rule) ([]*Compiled, error) {
	out := make([]*Compiled, 0, len(rs))
	seen := make(map[string]bool, len(rs))
	for _, r := range rs {
		c, err := compile(r)
		if err == nil && seen[r.ID] {
			c.Regex.Free()
			err = fmt.Errorf("duplicate rule ID: %s", r.ID)
		}
		if err == nil {
			if err = c.selfTest(); err != nil {
				c.Regex.Free()
			}
		}
		if err != nil {
			Free(out)
			return nil, err
		}
		seen[r.ID] = true
		out = append(out, c)
	}
	return out, nil
}

// Free releases the compiled patterns.
func Free(cs []*Compiled) {
	for _, c := range cs {
		c.Regex.Free()
	}
}

func compile(r *Rule) (*Compiled, error) {
	if r == nil {
		return nil, errors.New("rule is nil")
	}
	if r.ID == "" {
		return nil, errors.New("rule ID is required")
	}
	if r.Name == "" {
		return nil, fmt.Errorf("rule %s: name is required", r.ID)
	}
	if r.Pattern == "" {
		return nil, fmt.Errorf("rule %s: pattern is required", r.ID)
	}

	errCell := capi.NewError()
	defer errCell.Free()
	re := capi.CompileString(r.Pattern, errCell)
	if re == nil {
		return nil, fmt.Errorf("invalid pattern for rule %s: %w", r.ID, errCell.Err())
	}
	return &Compiled{Rule: r, Regex: re}, nil
}

func (c *Compiled) selfTest() error {
	for _, ex := range c.Examples {
		if !c.Regex.IsMatch([]byte(ex), 0) {
			return fmt.Errorf("rule %s does not match its example %q", c.ID, ex)
		}
	}
	for _, ex := range c.NegativeExamples {
		if c.Regex.IsMatch([]byte(ex), 0) {
			return fmt.Errorf("rule %s matches its negative example %q", c.ID, ex)
		}
	}
	return nil
}
