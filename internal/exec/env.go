package exec

import (
	"os"
	"path/filepath"
	"strings"
)

// CleanPath is the fixed PATH used for resolution and for clean invocations.
const CleanPath = "/usr/bin:/bin:/usr/sbin:/sbin"

// CleanEnv returns a copy of environ with PATH pinned to CleanPath.
// Any existing PATH entries are dropped; environ itself is not modified.
func CleanEnv(environ []string) []string {
	env := make([]string, 0, len(environ)+1)
	for _, kv := range environ {
		if strings.HasPrefix(kv, "PATH=") {
			continue
		}
		env = append(env, kv)
	}
	return append(env, "PATH="+CleanPath)
}

// CleanSearchPath returns the directories of CleanPath in search order.
func CleanSearchPath() []string {
	return filepath.SplitList(CleanPath)
}

// Resolver finds executables in a fixed list of directories.
type Resolver struct {
	// Dirs is searched in order. Nil means CleanSearchPath().
	Dirs []string
}

// Resolve returns the full path of the first executable regular file named
// program in the search directories. Relative names are joined onto each
// directory as-is, even when they contain separators. An absolute program
// replaces the directory, so it resolves when it is itself executable.
func (r Resolver) Resolve(program string) (string, bool) {
	dirs := r.Dirs
	if dirs == nil {
		dirs = CleanSearchPath()
	}
	for _, dir := range dirs {
		candidate := joinCandidate(dir, program)
		if isExecutable(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// ResolveExecutable resolves program against the clean PATH.
func ResolveExecutable(program string) (string, bool) {
	return Resolver{}.Resolve(program)
}

func joinCandidate(dir, program string) string {
	if filepath.IsAbs(program) {
		return filepath.Clean(program)
	}
	return filepath.Join(dir, program)
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0111 != 0
}
