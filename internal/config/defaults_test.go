package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Shape(t *testing.T) {
	t.Parallel()

	root := Default()

	assert.Equal(t, CurrentVersion, root.Version)
	require.Len(t, root.Agents, 2)
	assert.Equal(t, []string{"claude", "manus"}, root.AgentNames())
	assert.Equal(t, []string{"claude", "manus"}, root.EnabledAgents())

	for _, name := range root.AgentNames() {
		agent := root.Agents[name]
		assert.True(t, agent.Enabled, name)
		assert.Len(t, agent.Prompts, 2, name)
		assert.Equal(t, "shared/engineering.md", agent.Prompts[0],
			"%s must lead with the shared engineering prompt", name)
		assert.Equal(t, []string{"opened", "synchronize"}, agent.Trigger.Events, name)
		assert.Empty(t, agent.Trigger.Labels, name)
	}
}

func TestEnabledAgents_FiltersDisabled(t *testing.T) {
	t.Parallel()

	root := Default()
	claude := root.Agents["claude"]
	claude.Enabled = false
	root.Agents["claude"] = claude

	assert.Equal(t, []string{"manus"}, root.EnabledAgents())
	assert.Equal(t, []string{"claude", "manus"}, root.AgentNames(),
		"AgentNames includes disabled agents")
}

func TestDefault_PassesValidation(t *testing.T) {
	t.Parallel()

	vr := Validate(Default())
	assert.Empty(t, vr.Issues, "the shipped default must validate cleanly")
}
