package config

// CurrentVersion is the config schema version written by this release.
const CurrentVersion = "1"

// Default returns the built-in configuration used when no config file exists
// yet: both agents enabled, each concatenating the shared engineering prompt
// with its agent-specific prompt, triggered when a PR is opened or pushed to,
// with no label filter.
func Default() *Root {
	return &Root{
		Version: CurrentVersion,
		Agents: map[string]Agent{
			"manus": {
				Enabled: true,
				Prompts: []string{"shared/engineering.md", "manus/architecture.md"},
				Trigger: DefaultTrigger(),
			},
			"claude": {
				Enabled: true,
				Prompts: []string{"shared/engineering.md", "claude/code-quality.md"},
				Trigger: DefaultTrigger(),
			},
		},
	}
}

// DefaultTrigger returns the default trigger: fire on opened and synchronize,
// no label filter.
func DefaultTrigger() Trigger {
	return Trigger{
		Events: []string{"opened", "synchronize"},
		Labels: []string{},
	}
}
