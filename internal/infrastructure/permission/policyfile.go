package permission

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"helpdesk/internal/shared/logger"
)

// PolicyRule is one role/resource/action grant in a policy overrides file.
type PolicyRule struct {
	Role     string `yaml:"role"`
	Resource string `yaml:"resource"`
	Action   string `yaml:"action"`
}

// PolicyOverrides is the document shape of a permissions overrides file.
// Rules listed here are added on top of the built-in seed, letting an
// operator grant extra permissions without a code change.
type PolicyOverrides struct {
	Policies []PolicyRule `yaml:"policies"`
}

// LoadPolicyOverrides reads role policy overrides from a YAML file. A
// missing file is not an error; it returns an empty set.
func LoadPolicyOverrides(path string) (*PolicyOverrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &PolicyOverrides{}, nil
		}
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}

	var overrides PolicyOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse policy file %s: %w", path, err)
	}

	for i, rule := range overrides.Policies {
		if rule.Role == "" || rule.Resource == "" || rule.Action == "" {
			return nil, fmt.Errorf("policy file %s: rule %d is missing role, resource or action", path, i)
		}
	}

	return &overrides, nil
}

// ApplyPolicyOverrides adds each override rule to the enforcer.
func ApplyPolicyOverrides(e *Enforcer, overrides *PolicyOverrides, log logger.Interface) error {
	if overrides == nil || len(overrides.Policies) == 0 {
		return nil
	}

	policies := make([][]string, 0, len(overrides.Policies))
	for _, rule := range overrides.Policies {
		policies = append(policies, []string{rule.Role, rule.Resource, rule.Action})
	}

	if err := e.addPolicies(policies); err != nil {
		log.Errorw("failed to apply policy overrides", "error", err)
		return fmt.Errorf("failed to apply policy overrides: %w", err)
	}

	log.Infow("policy overrides applied", "count", len(policies))
	return nil
}
