// Package render turns an agent's configuration into the final text of its
// GitHub Actions workflow file.
//
// The embedded templates are full workflow documents. They contain two kinds
// of text: tool-substitution regions delimited by [[ and ]], and pass-through
// regions — everything else — which are copied byte-for-byte. GitHub's own
// interpolation syntax (${{ ... }}) therefore never collides with this tool's
// templating and reaches the output unmodified.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"text/template"

	"github.com/ritualhq/ritual/internal/config"
)

//go:embed templates
var templateFS embed.FS

// templatesRoot is the directory inside the embedded FS holding the workflow
// templates, one per agent type, named "<agent>-pr-review.yml.tmpl".
const templatesRoot = "templates"

var (
	// ErrTemplateNotFound reports a template name with no embedded template.
	ErrTemplateNotFound = errors.New("workflow template not found")
	// ErrUndefinedVariable reports a substitution region referencing data the
	// renderer did not supply. Unreachable with the shipped template set;
	// checked so a broken template fails loudly instead of emitting empty text.
	ErrUndefinedVariable = errors.New("template references undefined variable")
)

// funcs are the substitution helpers available inside [[ ]] regions.
var funcs = template.FuncMap{
	"flow":        flowSequence,
	"labelFilter": labelFilter,
}

// TemplateNames returns the embedded template names (without the .tmpl
// suffix) in sorted order.
func TemplateNames() ([]string, error) {
	entries, err := fs.ReadDir(templateFS, templatesRoot)
	if err != nil {
		return nil, fmt.Errorf("reading embedded templates: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".tmpl"))
	}
	sort.Strings(names)
	return names, nil
}

// Render produces the workflow text for the named template, driven by the
// named agent's configuration. Output is deterministic: the same config and
// template name always yield identical text.
func Render(templateName string, root *config.Root, agentName string) (string, error) {
	raw, err := templateFS.ReadFile(templatesRoot + "/" + templateName + ".tmpl")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, templateName)
	}

	agent, ok := root.Agents[agentName]
	if !ok {
		return "", fmt.Errorf("agent %q is not present in the configuration", agentName)
	}

	data := map[string]any{
		"agent":      agentName,
		"promptsDir": config.DirName + "/" + config.PromptsDirName,
		"prompts":    agent.Prompts,
		"events":     agent.Trigger.Events,
		"labels":     agent.Trigger.Labels,
	}

	return execute(templateName, string(raw), data)
}

// execute runs one template over the substitution data. The delimiters keep
// "${{" / "}}" out of the template grammar, and missingkey=error turns any
// reference to an unsupplied key into an execution failure, which is reported
// as ErrUndefinedVariable.
func execute(name, text string, data map[string]any) (string, error) {
	tmpl, err := template.New(name).
		Delims("[[", "]]").
		Option("missingkey=error").
		Funcs(funcs).
		Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing template %q: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: template %q: %v", ErrUndefinedVariable, name, err)
	}
	return buf.String(), nil
}

// flowSequence renders a string list as a YAML flow sequence: [a, b]. An
// empty list becomes []. Event and label names are emitted bare; both GitHub
// activity types and the pass-through names users may supply are plain
// scalars.
func flowSequence(items []string) string {
	return "[" + strings.Join(items, ", ") + "]"
}

// labelFilter renders the body of a GitHub Actions `if:` expression matching
// any of the given PR labels. The surrounding ${{ }} lives in the template's
// pass-through text.
func labelFilter(labels []string) string {
	clauses := make([]string, 0, len(labels))
	for _, label := range labels {
		clauses = append(clauses,
			fmt.Sprintf("contains(github.event.pull_request.labels.*.name, '%s')", label))
	}
	return strings.Join(clauses, " || ")
}
