package generate

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritualhq/ritual/internal/config"
	"github.com/ritualhq/ritual/internal/logging"
)

// treeFiles returns all file paths under root, relative, sorted.
func treeFiles(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	require.NoError(t, err)
	sort.Strings(files)
	return files
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// TestInit_FreshTarget is the default-config, empty-directory scenario: init
// creates exactly the config file, the three default prompt files, and one
// workflow per enabled agent, skipping nothing.
func TestInit_FreshTarget(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	sum, err := Init(root, false)
	require.NoError(t, err)

	want := []string{
		filepath.Join(".github", "workflows", "claude-pr-review.yml"),
		filepath.Join(".github", "workflows", "manus-pr-review.yml"),
		filepath.Join(".ritual", "config.yml"),
		filepath.Join(".ritual", "prompts", "claude", "code-quality.md"),
		filepath.Join(".ritual", "prompts", "manus", "architecture.md"),
		filepath.Join(".ritual", "prompts", "shared", "engineering.md"),
	}
	assert.Equal(t, want, treeFiles(t, root))

	assert.Len(t, sum.Created, 6)
	assert.Empty(t, sum.Skipped)
	assert.Empty(t, sum.Overwritten)

	// Summary ordering is deterministic: config, then prompts, then workflows.
	assert.Equal(t, filepath.Join(".ritual", "config.yml"), sum.Created[0])
	assert.Equal(t, filepath.Join(".github", "workflows", "claude-pr-review.yml"), sum.Created[4])
	assert.Equal(t, filepath.Join(".github", "workflows", "manus-pr-review.yml"), sum.Created[5])
}

// TestInit_Idempotent verifies that a second init on the same target reports
// every artifact as Skipped and changes no bytes on disk.
func TestInit_Idempotent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	_, err := Init(root, false)
	require.NoError(t, err)

	before := map[string]string{}
	for _, rel := range treeFiles(t, root) {
		before[rel] = readFile(t, filepath.Join(root, rel))
	}

	sum, err := Init(root, false)
	require.NoError(t, err)

	assert.Empty(t, sum.Created)
	assert.Empty(t, sum.Overwritten)
	assert.Len(t, sum.Skipped, 6)

	for rel, content := range before {
		assert.Equal(t, content, readFile(t, filepath.Join(root, rel)), rel)
	}
}

// TestInit_ExistingConfigWithDisabledAgent: a prior config disabling one agent
// is left untouched and no workflow is generated for the disabled agent.
func TestInit_ExistingConfigWithDisabledAgent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	doc := `version: "1"
agents:
  manus:
    enabled: false
    prompts: [shared/engineering.md]
    trigger:
      "on": [opened, synchronize]
      labels: []
  claude:
    enabled: true
    prompts: [shared/engineering.md, claude/code-quality.md]
    trigger:
      "on": [opened]
      labels: []
`
	cfgPath := config.Path(root)
	require.NoError(t, os.MkdirAll(filepath.Dir(cfgPath), 0o755))
	require.NoError(t, os.WriteFile(cfgPath, []byte(doc), 0o644))

	sum, err := Init(root, false)
	require.NoError(t, err)

	assert.Equal(t, doc, readFile(t, cfgPath), "user config must be byte-untouched")
	assert.Contains(t, sum.Skipped, filepath.Join(".ritual", "config.yml"))

	assert.NoFileExists(t, filepath.Join(root, ".github", "workflows", "manus-pr-review.yml"),
		"no workflow for a disabled agent")
	assert.FileExists(t, filepath.Join(root, ".github", "workflows", "claude-pr-review.yml"))
}

// TestUpdateWorkflows_OverwritesHandEditedWorkflows: update-workflows rewrites
// every enabled agent's workflow file, even hand-edited ones, and never
// touches prompts or the config.
func TestUpdateWorkflows_OverwritesHandEditedWorkflows(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	_, err := Init(root, false)
	require.NoError(t, err)

	manusWf := filepath.Join(root, ".github", "workflows", "manus-pr-review.yml")
	claudeWf := filepath.Join(root, ".github", "workflows", "claude-pr-review.yml")
	require.NoError(t, os.WriteFile(manusWf, []byte("# hand edited\n"), 0o644))
	require.NoError(t, os.WriteFile(claudeWf, []byte("# hand edited\n"), 0o644))

	promptPath := filepath.Join(root, ".ritual", "prompts", "shared", "engineering.md")
	promptBefore := readFile(t, promptPath)
	cfgBefore := readFile(t, config.Path(root))

	sum, err := UpdateWorkflows(root)
	require.NoError(t, err)

	assert.Len(t, sum.Overwritten, 2)
	assert.Empty(t, sum.Created)
	assert.Empty(t, sum.Skipped)

	assert.NotContains(t, readFile(t, manusWf), "hand edited")
	assert.Contains(t, readFile(t, manusWf), "name: Manus PR Review")
	assert.Contains(t, readFile(t, claudeWf), "name: Claude PR Review")

	assert.Equal(t, promptBefore, readFile(t, promptPath), "prompts must be byte-untouched")
	assert.Equal(t, cfgBefore, readFile(t, config.Path(root)), "config must be byte-untouched")
}

// TestUpdateWorkflows_RewritesIdenticalContent: force semantics hold even when
// the on-disk file already matches the freshly rendered content.
func TestUpdateWorkflows_RewritesIdenticalContent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	_, err := Init(root, false)
	require.NoError(t, err)

	sum, err := UpdateWorkflows(root)
	require.NoError(t, err)

	assert.Len(t, sum.Overwritten, 2)
	assert.Empty(t, sum.Skipped)
}

func TestUpdateWorkflows_RequiresConfig(t *testing.T) {
	t.Parallel()

	_, err := UpdateWorkflows(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ritual init")
}

// TestInit_ForceRewritesEverything verifies init --force overwrites all
// artifacts, re-serializing the loaded config rather than resetting it to
// defaults.
func TestInit_ForceRewritesEverything(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	_, err := Init(root, false)
	require.NoError(t, err)

	// Disable manus in the on-disk config, then force-init.
	cfg, err := config.LoadOrDefault(config.Path(root))
	require.NoError(t, err)
	manus := cfg.Agents["manus"]
	manus.Enabled = false
	cfg.Agents["manus"] = manus
	data, err := cfg.Marshal()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(config.Path(root), data, 0o644))

	sum, err := Init(root, true)
	require.NoError(t, err)

	assert.Empty(t, sum.Skipped)
	// Config + 3 prompts + claude workflow overwritten; the manus workflow
	// from the first run is simply left behind (force does not delete).
	assert.Len(t, sum.Overwritten, 5)

	reloaded, err := config.LoadOrDefault(config.Path(root))
	require.NoError(t, err)
	assert.False(t, reloaded.Agents["manus"].Enabled,
		"force must re-serialize the user's config, not reset it to defaults")
}

// TestInit_StopsAtFirstError: a failing artifact aborts the run and leaves
// earlier writes in place.
func TestInit_StopsAtFirstError(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	// Block the workflows directory with a file so workflow writes fail.
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".github"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".github", "workflows"), []byte("x"), 0o644))

	sum, err := Init(root, false)
	require.Error(t, err)

	require.NotNil(t, sum)
	assert.FileExists(t, config.Path(root), "config written before the failure must remain")
	assert.Contains(t, sum.Created, filepath.Join(".ritual", "config.yml"))
}

// captureLogs points the logging stack at a buffer with the given level
// flags, restoring defaults when the test ends. Not safe to combine with
// t.Parallel: the logging state is process-global.
func captureLogs(t *testing.T, verbose, quiet bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logging.Setup(verbose, quiet, false)
	logging.SetOutput(&buf)
	t.Cleanup(func() {
		logging.Setup(false, false, false)
	})
	return &buf
}

// TestInit_QuietSuppressesAdvisoryLogs: loggers are created per run, after
// logging.Setup, so quiet mode silences the validation warnings an enabled
// agent with no prompts would otherwise emit.
func TestInit_QuietSuppressesAdvisoryLogs(t *testing.T) {
	root := t.TempDir()
	doc := `version: "1"
agents:
  claude:
    enabled: true
    prompts: []
    trigger:
      "on": [opened]
      labels: []
`
	cfgPath := config.Path(root)
	require.NoError(t, os.MkdirAll(filepath.Dir(cfgPath), 0o755))
	require.NoError(t, os.WriteFile(cfgPath, []byte(doc), 0o644))

	buf := captureLogs(t, false, true)

	_, err := Init(root, false)
	require.NoError(t, err)
	assert.Empty(t, buf.String(), "quiet mode must suppress warnings and debug output")
}

// TestInit_VerboseEmitsDebugLogs: the flip side of quiet; a run after a
// verbose Setup surfaces the per-artifact debug lines.
func TestInit_VerboseEmitsDebugLogs(t *testing.T) {
	root := t.TempDir()
	buf := captureLogs(t, true, false)

	_, err := Init(root, false)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "materialized artifact")
	assert.Contains(t, buf.String(), "rendered workflow")
}

// TestInit_UnknownEnabledAgentSkipped: an enabled agent with no shipped
// workflow template is skipped with a warning instead of failing the run.
func TestInit_UnknownEnabledAgentSkipped(t *testing.T) {
	root := t.TempDir()
	doc := `version: "1"
agents:
  devin:
    enabled: true
    prompts: [shared/engineering.md]
    trigger:
      "on": [opened]
      labels: []
  claude:
    enabled: true
    prompts: [shared/engineering.md, claude/code-quality.md]
    trigger:
      "on": [opened]
      labels: []
`
	cfgPath := config.Path(root)
	require.NoError(t, os.MkdirAll(filepath.Dir(cfgPath), 0o755))
	require.NoError(t, os.WriteFile(cfgPath, []byte(doc), 0o644))

	buf := captureLogs(t, false, false)

	sum, err := Init(root, false)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, ".github", "workflows", "claude-pr-review.yml"))
	assert.NoFileExists(t, filepath.Join(root, ".github", "workflows", "devin-pr-review.yml"))
	assert.NotContains(t, sum.Created, filepath.Join(".github", "workflows", "devin-pr-review.yml"))
	assert.Contains(t, buf.String(), "no workflow template")

	// update-workflows tolerates the same config.
	sum, err = UpdateWorkflows(root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(".github", "workflows", "claude-pr-review.yml")}, sum.Overwritten)
}
