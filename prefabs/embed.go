package prefabs

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// LoadScript reads an embedded brain script.
func LoadScript(name string) ([]byte, error) {
	return ScriptsFS.ReadFile(cleanScriptPath(name))
}

// Scripts loads brain scripts from Dir when present there and falls back to
// the embedded copies, so scripts can be edited without a rebuild.
type Scripts struct {
	Dir string
}

func (s Scripts) Load(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if s.Dir != "" {
		data, err := os.ReadFile(s.diskPath(clean))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("prefabs: read %s: %w", clean, err)
		}
	}
	return ScriptsFS.ReadFile(clean)
}

func (s Scripts) diskPath(clean string) string {
	return filepath.Join(s.Dir, filepath.FromSlash(strings.TrimPrefix(clean, "scripts/")))
}

// IsScriptFile reports whether path looks like a brain script.
func IsScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, "prefabs/scripts/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	return fmt.Sprintf("scripts/%s", s)
}
