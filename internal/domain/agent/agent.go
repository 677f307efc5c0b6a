package agent

import (
	"fmt"
	"regexp"
	"time"

	"helpdesk/internal/shared/version"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Agent is an AI assistant configuration. Threads reference an agent, and the
// agent runner uses its model name, system prompt and tool allow-list when
// producing replies.
type Agent struct {
	id            uint
	slug          string
	displayName   string
	modelName     string
	systemPrompt  string
	promptVersion string
	enabled       bool
	allowedTools  []string
	createdAt     time.Time
	updatedAt     time.Time
}

func NewAgent(slug, displayName, modelName, systemPrompt string, allowedTools []string) (*Agent, error) {
	if !slugRegex.MatchString(slug) {
		return nil, fmt.Errorf("invalid agent slug: %s", slug)
	}
	if len(displayName) == 0 {
		return nil, fmt.Errorf("display name is required")
	}
	if len(modelName) == 0 {
		return nil, fmt.Errorf("model name is required")
	}
	if len(systemPrompt) > 50000 {
		return nil, fmt.Errorf("system prompt exceeds maximum length of 50000 characters")
	}

	if allowedTools == nil {
		allowedTools = []string{}
	}

	now := time.Now().UTC()
	return &Agent{
		slug:          slug,
		displayName:   displayName,
		modelName:     modelName,
		systemPrompt:  systemPrompt,
		promptVersion: "v0.1.0",
		enabled:       true,
		allowedTools:  allowedTools,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructAgent(
	id uint,
	slug, displayName, modelName, systemPrompt, promptVersion string,
	enabled bool,
	allowedTools []string,
	createdAt, updatedAt time.Time,
) (*Agent, error) {
	if id == 0 {
		return nil, fmt.Errorf("agent ID cannot be zero")
	}
	if slug == "" {
		return nil, fmt.Errorf("agent slug is required")
	}

	if allowedTools == nil {
		allowedTools = []string{}
	}

	return &Agent{
		id:            id,
		slug:          slug,
		displayName:   displayName,
		modelName:     modelName,
		systemPrompt:  systemPrompt,
		promptVersion: promptVersion,
		enabled:       enabled,
		allowedTools:  allowedTools,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

func (a *Agent) ID() uint {
	return a.id
}

func (a *Agent) Slug() string {
	return a.slug
}

func (a *Agent) DisplayName() string {
	return a.displayName
}

func (a *Agent) ModelName() string {
	return a.modelName
}

func (a *Agent) SystemPrompt() string {
	return a.systemPrompt
}

func (a *Agent) PromptVersion() string {
	return a.promptVersion
}

func (a *Agent) Enabled() bool {
	return a.enabled
}

func (a *Agent) AllowedTools() []string {
	toolsCopy := make([]string, len(a.allowedTools))
	copy(toolsCopy, a.allowedTools)
	return toolsCopy
}

func (a *Agent) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Agent) UpdatedAt() time.Time {
	return a.updatedAt
}

func (a *Agent) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("agent ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("agent ID cannot be zero")
	}
	a.id = id
	return nil
}

// CanUseTool checks the agent's tool allow-list. An empty list means no tools.
func (a *Agent) CanUseTool(toolName string) bool {
	for _, t := range a.allowedTools {
		if t == toolName {
			return true
		}
	}
	return false
}

// UpdatePrompt replaces the system prompt. The new prompt version must be a
// valid semver strictly newer than the current one so rollouts stay ordered.
func (a *Agent) UpdatePrompt(systemPrompt, promptVersion string) error {
	if len(systemPrompt) == 0 {
		return fmt.Errorf("system prompt is required")
	}
	if len(systemPrompt) > 50000 {
		return fmt.Errorf("system prompt exceeds maximum length of 50000 characters")
	}
	if !version.HasNewerVersion(a.promptVersion, promptVersion) {
		return fmt.Errorf("prompt version %s is not newer than %s", promptVersion, a.promptVersion)
	}

	a.systemPrompt = systemPrompt
	a.promptVersion = version.Normalize(promptVersion)
	a.updatedAt = time.Now().UTC()
	return nil
}

func (a *Agent) UpdateDisplayName(displayName string) error {
	if len(displayName) == 0 {
		return fmt.Errorf("display name is required")
	}
	a.displayName = displayName
	a.updatedAt = time.Now().UTC()
	return nil
}

func (a *Agent) UpdateModel(modelName string) error {
	if len(modelName) == 0 {
		return fmt.Errorf("model name is required")
	}
	a.modelName = modelName
	a.updatedAt = time.Now().UTC()
	return nil
}

func (a *Agent) SetAllowedTools(tools []string) {
	if tools == nil {
		tools = []string{}
	}
	a.allowedTools = tools
	a.updatedAt = time.Now().UTC()
}

func (a *Agent) Enable() {
	if a.enabled {
		return
	}
	a.enabled = true
	a.updatedAt = time.Now().UTC()
}

func (a *Agent) Disable() {
	if !a.enabled {
		return
	}
	a.enabled = false
	a.updatedAt = time.Now().UTC()
}
