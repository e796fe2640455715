package rules

// yamlRule is the on-disk form of a Rule.
type yamlRule struct {
	ID               string   `yaml:"id"`
	Name             string   `yaml:"name"`
	Pattern          string   `yaml:"pattern"`
	Description      string   `yaml:"description,omitempty"`
	Examples         []string `yaml:"examples,omitempty"`
	NegativeExamples []string `yaml:"negative_examples,omitempty"`
}

// yamlRulesFile is the top-level structure of a rules file: a "rules" list.
type yamlRulesFile struct {
	Rules []yamlRule `yaml:"rules"`
}

func convertYAMLRule(yr yamlRule) *Rule {
	return &Rule{
		ID:               yr.ID,
		Name:             yr.Name,
		Pattern:          yr.Pattern,
		Description:      yr.Description,
		Examples:         yr.Examples,
		NegativeExamples: yr.NegativeExamples,
	}
}
