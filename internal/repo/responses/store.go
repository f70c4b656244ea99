package responses

import (
	"fmt"
	"os"
	"path/filepath"
)

// Builtin template names that live at the top of the responses directory.
// They are only reachable through the built-in commands; group command
// lookups never resolve here.
var builtins = map[string]struct{}{
	"help":  {},
	"rules": {},
	"link":  {},
}

// Store resolves command names to markdown reply templates. Names are keys
// into a fixed namespace, never raw paths: anything that could traverse the
// directory is rejected before lookup.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// HasAnswer reports whether a group command template exists under answers/.
// Group commands are opt-in by file existence.
func (s *Store) HasAnswer(name string) bool {
	path, ok := s.answerPath(name)
	if !ok {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ReadAnswer returns a group command template from answers/.
func (s *Store) ReadAnswer(name string) (string, error) {
	path, ok := s.answerPath(name)
	if !ok {
		return "", fmt.Errorf("invalid template name %q", name)
	}
	return readFile(path, name)
}

// ReadBuiltin returns one of the fixed top-level templates (help, rules,
// link). Any other name is rejected.
func (s *Store) ReadBuiltin(name string) (string, error) {
	if _, ok := builtins[name]; !ok {
		return "", fmt.Errorf("unknown builtin template %q", name)
	}
	return readFile(filepath.Join(s.dir, name+".md"), name)
}

func (s *Store) answerPath(name string) (string, bool) {
	if !validName(name) {
		return "", false
	}
	return filepath.Join(s.dir, "answers", name+".md"), true
}

func readFile(path, name string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read template %q: %w", name, err)
	}
	return string(content), nil
}

// validName rejects path separators, dots and control characters; a command
// name is an opaque token, not a path.
func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r == '/' || r == '\\' || r == '.':
			return false
		case r < 0x20:
			return false
		}
	}
	return true
}
