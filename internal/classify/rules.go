package classify

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"docket/internal/pipeline"
)

// Kind selects which attribute of a file a rule matches against.
type Kind string

const (
	KindFilename  Kind = "filename"
	KindExtension Kind = "extension"
	KindContent   Kind = "content"
	KindMetadata  Kind = "metadata"
	KindEmail     Kind = "email"
)

var validKinds = map[Kind]bool{
	KindFilename:  true,
	KindExtension: true,
	KindContent:   true,
	KindMetadata:  true,
	KindEmail:     true,
}

// Rule is one compiled classification rule.
type Rule struct {
	Name       string
	Kind       Kind
	Pattern    *regexp.Regexp
	Target     Template
	Confidence float64
}

type ruleFile struct {
	Rules []ruleSpec `yaml:"rules"`
}

type ruleSpec struct {
	Name       string  `yaml:"name"`
	Kind       string  `yaml:"kind"`
	Pattern    string  `yaml:"pattern"`
	Target     string  `yaml:"target"`
	Confidence float64 `yaml:"confidence"`
}

// LoadRules reads and compiles the rule file at path. Rule order is
// preserved; ties between equal-confidence matches resolve to the earlier
// rule in the file.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pipeline.Wrap(pipeline.ErrConfiguration, "classify", "load-rules", "read rule file", err)
	}
	return ParseRules(data)
}

// ParseRules compiles a YAML rule document.
func ParseRules(data []byte) ([]Rule, error) {
	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, pipeline.Wrap(pipeline.ErrConfiguration, "classify", "parse-rules", "decode rule file", err)
	}
	if len(file.Rules) == 0 {
		return nil, pipeline.Wrap(pipeline.ErrConfiguration, "classify", "parse-rules", "rule file defines no rules", nil)
	}
	rules := make([]Rule, 0, len(file.Rules))
	seen := make(map[string]bool, len(file.Rules))
	for i, spec := range file.Rules {
		rule, err := compileRule(spec)
		if err != nil {
			name := spec.Name
			if name == "" {
				name = fmt.Sprintf("rule %d", i+1)
			}
			return nil, pipeline.Wrap(pipeline.ErrConfiguration, "classify", "parse-rules", name, err)
		}
		if seen[rule.Name] {
			return nil, pipeline.Wrap(pipeline.ErrConfiguration, "classify", "parse-rules", fmt.Sprintf("duplicate rule name %q", rule.Name), nil)
		}
		seen[rule.Name] = true
		rules = append(rules, rule)
	}
	return rules, nil
}

func compileRule(spec ruleSpec) (Rule, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return Rule{}, fmt.Errorf("missing name")
	}
	kind := Kind(strings.ToLower(strings.TrimSpace(spec.Kind)))
	if !validKinds[kind] {
		return Rule{}, fmt.Errorf("unknown kind %q", spec.Kind)
	}
	if spec.Pattern == "" {
		return Rule{}, fmt.Errorf("missing pattern")
	}
	pattern, err := regexp.Compile("(?i)" + spec.Pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("compile pattern: %w", err)
	}
	if spec.Target == "" {
		return Rule{}, fmt.Errorf("missing target")
	}
	target, err := ParseTemplate(spec.Target)
	if err != nil {
		return Rule{}, err
	}
	if spec.Confidence < 0 || spec.Confidence > 1 {
		return Rule{}, fmt.Errorf("confidence %v outside [0, 1]", spec.Confidence)
	}
	return Rule{
		Name:       spec.Name,
		Kind:       kind,
		Pattern:    pattern,
		Target:     target,
		Confidence: spec.Confidence,
	}, nil
}
