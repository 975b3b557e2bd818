package generate

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/ritualhq/ritual/internal/config"
)

// promptFS is the read-only bundle of default prompt content shipped with the
// tool. The layout mirrors the on-disk .ritual/prompts/ tree: a shared/
// subtree usable by any agent plus one subtree per agent.
//
//go:embed all:prompts
var promptFS embed.FS

// promptsEmbedRoot is the top-level directory inside promptFS.
const promptsEmbedRoot = "prompts"

// promptAsset is one default prompt file: its path relative to the prompts
// root (forward slashes) and its markdown content.
type promptAsset struct {
	rel     string
	content []byte
}

// defaultPrompts returns every embedded default prompt, ordered by path.
func defaultPrompts() ([]promptAsset, error) {
	var assets []promptAsset

	err := fs.WalkDir(promptFS, promptsEmbedRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walking embedded prompts at %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}

		content, readErr := promptFS.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("reading embedded prompt %s: %w", path, readErr)
		}
		assets = append(assets, promptAsset{
			rel:     strings.TrimPrefix(path, promptsEmbedRoot+"/"),
			content: content,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	// fs.WalkDir visits entries in lexical order, so assets is already
	// deterministic; no re-sort needed.
	return assets, nil
}

// promptTargetRel converts an embedded prompt path into its target path
// relative to the repository root (.ritual/prompts/<rel>).
func promptTargetRel(rel string) string {
	return filepath.Join(config.DirName, config.PromptsDirName, filepath.FromSlash(rel))
}
