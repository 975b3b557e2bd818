package config

import (
	"fmt"
	"path"
	"strings"
)

// ValidationSeverity indicates whether a validation issue is an error or warning.
type ValidationSeverity string

const (
	// SeverityError indicates a fatal validation issue; the configuration is unusable.
	SeverityError ValidationSeverity = "error"
	// SeverityWarning indicates an advisory validation issue; the configuration works
	// but likely not as the user intends.
	SeverityWarning ValidationSeverity = "warning"
)

// ValidationIssue represents a single validation finding.
type ValidationIssue struct {
	Severity ValidationSeverity
	Field    string // dotted path, e.g. "agents.manus.prompts"
	Message  string
}

// ValidationResult holds all validation findings.
type ValidationResult struct {
	Issues []ValidationIssue
}

// HasErrors returns true if any issue has error severity.
func (vr *ValidationResult) HasErrors() bool {
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only error-severity issues.
func (vr *ValidationResult) Errors() []ValidationIssue {
	var errs []ValidationIssue
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityError {
			errs = append(errs, issue)
		}
	}
	return errs
}

// Warnings returns only warning-severity issues.
func (vr *ValidationResult) Warnings() []ValidationIssue {
	var warns []ValidationIssue
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityWarning {
			warns = append(warns, issue)
		}
	}
	return warns
}

// Validate checks the configuration for likely mistakes. Almost everything is
// advisory: an enabled agent with no prompts still generates a workflow (with
// an empty instruction body), and unrecognized event names are passed through
// for GitHub to validate. Only a nil document is an error here; the version
// requirement is enforced at parse time.
func Validate(root *Root) *ValidationResult {
	vr := &ValidationResult{}

	if root == nil {
		addIssue(vr, SeverityError, "", "configuration is nil")
		return vr
	}

	for _, name := range root.AgentNames() {
		validateAgent(vr, name, root.Agents[name])
	}

	return vr
}

// validateAgent checks one agent entry.
func validateAgent(vr *ValidationResult, name string, agent Agent) {
	prefix := "agents." + name

	if agent.Enabled && len(agent.Prompts) == 0 {
		addIssue(vr, SeverityWarning, prefix+".prompts",
			"agent is enabled with no prompts; its workflow will carry an empty instruction body")
	}

	for i, ref := range agent.Prompts {
		if escapesPromptsRoot(ref) {
			addIssue(vr, SeverityWarning, fmt.Sprintf("%s.prompts[%d]", prefix, i),
				fmt.Sprintf("prompt reference %q escapes the prompts directory", ref))
		}
	}

	for i, event := range agent.Trigger.Events {
		if !KnownEvents[event] {
			addIssue(vr, SeverityWarning, fmt.Sprintf("%s.trigger.on[%d]", prefix, i),
				fmt.Sprintf("event %q is not a known pull_request activity type; passing it through for GitHub to validate", event))
		}
	}
}

// escapesPromptsRoot reports whether a prompt reference points outside
// .ritual/prompts/ (absolute path or a cleaned path starting with "..").
func escapesPromptsRoot(ref string) bool {
	if strings.HasPrefix(ref, "/") {
		return true
	}
	cleaned := path.Clean(ref)
	return cleaned == ".." || strings.HasPrefix(cleaned, "../")
}

// addIssue appends an issue to the validation result.
func addIssue(vr *ValidationResult, sev ValidationSeverity, field, message string) {
	vr.Issues = append(vr.Issues, ValidationIssue{
		Severity: sev,
		Field:    field,
		Message:  message,
	})
}
