// Package generate materializes ritual's artifacts into a target repository:
// the root config file, the default prompt files, and one rendered GitHub
// Actions workflow per enabled agent.
package generate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/log"

	"github.com/ritualhq/ritual/internal/config"
	"github.com/ritualhq/ritual/internal/logging"
	"github.com/ritualhq/ritual/internal/render"
)

// workflowsDirRel is where rendered workflow files land, relative to the
// target root.
var workflowsDirRel = filepath.Join(".github", "workflows")

// Summary reports what a run did, per artifact, in the order artifacts were
// processed: root config, prompt files, workflow files. Paths are relative to
// the target root.
type Summary struct {
	Created     []string
	Skipped     []string
	Overwritten []string
}

// record files a materialization result under the matching summary bucket.
func (s *Summary) record(rel string, res Result) {
	switch res {
	case Created:
		s.Created = append(s.Created, rel)
	case Skipped:
		s.Skipped = append(s.Skipped, rel)
	case Overwritten:
		s.Overwritten = append(s.Overwritten, rel)
	}
}

// Total returns the number of artifacts the run touched or considered.
func (s *Summary) Total() int {
	return len(s.Created) + len(s.Skipped) + len(s.Overwritten)
}

// Init sets up the full PR-review infrastructure under targetRoot. An
// existing config file is the source of truth; when none exists the built-in
// default is written. Every artifact is skip-if-exists unless force is set,
// in which case everything is rewritten.
//
// The run is not transactional: the first failing artifact aborts the run and
// earlier writes remain on disk. Each artifact is independently valid, so a
// partial run leaves nothing broken behind.
func Init(targetRoot string, force bool) (*Summary, error) {
	// Created here, not at package init, so the logger picks up the level,
	// output, and format the CLI configured in logging.Setup.
	logger := logging.New("generate")

	cfg, err := config.LoadOrDefault(config.Path(targetRoot))
	if err != nil {
		return nil, err
	}
	reportValidation(logger, cfg)

	policy := SkipIfExists
	if force {
		policy = ForceOverwrite
	}

	sum := &Summary{}

	// Root config first: if a later artifact fails, the source of truth for a
	// re-run is already on disk.
	data, err := cfg.Marshal()
	if err != nil {
		return sum, err
	}
	cfgRel := filepath.Join(config.DirName, config.FileName)
	if err := writeArtifact(logger, sum, targetRoot, cfgRel, data, policy); err != nil {
		return sum, err
	}

	prompts, err := defaultPrompts()
	if err != nil {
		return sum, err
	}
	for _, p := range prompts {
		if err := writeArtifact(logger, sum, targetRoot, promptTargetRel(p.rel), p.content, policy); err != nil {
			return sum, err
		}
	}

	if err := writeWorkflows(logger, sum, targetRoot, cfg, policy); err != nil {
		return sum, err
	}
	return sum, nil
}

// UpdateWorkflows re-renders and force-overwrites the workflow files for
// every enabled agent, using the existing config file as the source of truth.
// Prompt files and the config itself are never touched. It is an error to
// call this before init has written a config file.
func UpdateWorkflows(targetRoot string) (*Summary, error) {
	logger := logging.New("generate")

	cfgPath := config.Path(targetRoot)
	if _, err := os.Stat(cfgPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file %s not found: run \"ritual init\" first", cfgPath)
		}
		return nil, fmt.Errorf("checking config %s: %w", cfgPath, err)
	}

	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return nil, err
	}
	reportValidation(logger, cfg)

	sum := &Summary{}
	if err := writeWorkflows(logger, sum, targetRoot, cfg, ForceOverwrite); err != nil {
		return sum, err
	}
	return sum, nil
}

// writeWorkflows renders and materializes one workflow file per enabled
// agent, in sorted agent-name order for a deterministic summary. Enabled
// agents without a shipped template are skipped with a warning; users may
// list agents this release does not know about.
func writeWorkflows(logger *log.Logger, sum *Summary, targetRoot string, cfg *config.Root, policy Policy) error {
	for _, name := range cfg.EnabledAgents() {
		fileName := name + "-pr-review.yml"
		content, err := render.Render(fileName, cfg, name)
		if errors.Is(err, render.ErrTemplateNotFound) {
			logger.Warn("no workflow template for agent; skipping", "agent", name)
			continue
		}
		if err != nil {
			return err
		}
		logger.Debug("rendered workflow",
			"agent", name,
			"content_hash", fmt.Sprintf("%016x", xxhash.Sum64String(content)))

		rel := filepath.Join(workflowsDirRel, fileName)
		if err := writeArtifact(logger, sum, targetRoot, rel, []byte(content), policy); err != nil {
			return err
		}
	}
	return nil
}

// writeArtifact materializes one artifact and records the outcome.
func writeArtifact(logger *log.Logger, sum *Summary, targetRoot, rel string, content []byte, policy Policy) error {
	res, err := Materialize(filepath.Join(targetRoot, rel), content, policy)
	if err != nil {
		return err
	}
	logger.Debug("materialized artifact", "path", rel, "result", res)
	sum.record(rel, res)
	return nil
}

// reportValidation logs advisory findings. Validation never blocks a run:
// the config either parsed (and is usable) or loading already failed.
func reportValidation(logger *log.Logger, cfg *config.Root) {
	vr := config.Validate(cfg)
	for _, issue := range vr.Warnings() {
		logger.Warn(issue.Message, "field", issue.Field)
	}
	for _, issue := range vr.Errors() {
		logger.Error(issue.Message, "field", issue.Field)
	}
}
