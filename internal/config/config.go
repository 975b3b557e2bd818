// Package config defines the .ritual/config.yml document: which PR-review
// agents are enabled, which prompt files each one concatenates, and which
// pull-request events trigger its generated workflow.
package config

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Root is the top-level configuration document.
type Root struct {
	// Version is the config schema version tag. Required; currently "1".
	Version string `yaml:"version"`
	// Agents maps an agent name (e.g. "manus", "claude") to its settings.
	Agents map[string]Agent `yaml:"agents"`
}

// Agent holds the settings for one PR-review agent.
type Agent struct {
	Enabled bool `yaml:"enabled"`
	// Prompts is an ordered list of prompt-file references relative to
	// .ritual/prompts/. Order is significant: prompt content is concatenated
	// in list order. Duplicates are allowed.
	Prompts []string `yaml:"prompts"`
	Trigger Trigger  `yaml:"trigger"`
}

// Trigger describes when the generated workflow fires.
//
// The event list is stored under the YAML key "on" to mirror GitHub Actions
// syntax. That word is a boolean literal in YAML 1.1, so Trigger carries
// custom marshal/unmarshal logic: the key is always emitted as a quoted
// string, and documents where an earlier serializer already coerced the key
// to boolean `true` are still read correctly.
type Trigger struct {
	// Events are pull_request activity types (opened, synchronize, reopened,
	// ready_for_review). Unrecognized names pass through untouched; GitHub,
	// not this tool, validates them.
	Events []string
	// Labels is an optional label filter. Empty means no filter.
	Labels []string
}

// KnownEvents is the set of pull_request activity types the default templates
// are written for. Other names are permitted and passed through.
var KnownEvents = map[string]bool{
	"opened":           true,
	"synchronize":      true,
	"reopened":         true,
	"ready_for_review": true,
}

// triggerEventsKey is the on-disk key for Trigger.Events.
const triggerEventsKey = "on"

// UnmarshalYAML decodes a trigger mapping, accepting the events key either as
// the string "on" or as a YAML 1.1 boolean coercion of it ("true" in any of
// its literal spellings). Unknown keys are ignored.
func (t *Trigger) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("trigger: expected a mapping, got %s", nodeKind(node.Kind))
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		switch {
		case isEventsKey(key.Value):
			if err := val.Decode(&t.Events); err != nil {
				return fmt.Errorf("trigger key %q: %w", key.Value, err)
			}
		case key.Value == "labels":
			if err := val.Decode(&t.Labels); err != nil {
				return fmt.Errorf("trigger key %q: %w", key.Value, err)
			}
		}
	}
	return nil
}

// MarshalYAML emits the trigger with the events key as a double-quoted "on"
// scalar so the document survives YAML 1.1 round trips without the key being
// re-read as boolean true.
func (t Trigger) MarshalYAML() (any, error) {
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Style: yaml.DoubleQuotedStyle, Value: triggerEventsKey},
			sequenceNode(t.Events),
			{Kind: yaml.ScalarNode, Value: "labels"},
			sequenceNode(t.Labels),
		},
	}, nil
}

// isEventsKey reports whether a mapping key names the trigger event list.
// "on" is the canonical spelling; the boolean spellings cover documents that
// went through a YAML 1.1 serializer which coerced the bare word.
func isEventsKey(key string) bool {
	switch strings.ToLower(key) {
	case triggerEventsKey, "true":
		return true
	}
	return false
}

// sequenceNode builds a flow-style sequence node ("[a, b]"); a nil or empty
// slice becomes the empty sequence "[]".
func sequenceNode(items []string) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, item := range items {
		seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: item})
	}
	return seq
}

// nodeKind names a yaml.Kind for error messages.
func nodeKind(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}

// Marshal serializes the document back to YAML. The trigger events key is
// always emitted as a quoted string (see Trigger.MarshalYAML).
func (r *Root) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("serializing config: %w", err)
	}
	return data, nil
}

// AgentNames returns all agent names in sorted order.
func (r *Root) AgentNames() []string {
	names := make([]string, 0, len(r.Agents))
	for name := range r.Agents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EnabledAgents returns the names of enabled agents in sorted order.
func (r *Root) EnabledAgents() []string {
	var names []string
	for _, name := range r.AgentNames() {
		if r.Agents[name].Enabled {
			names = append(names, name)
		}
	}
	return names
}
