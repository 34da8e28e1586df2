package storage

import (
	"bufio"
	"os"
	"strings"

	"github.com/mesh-intelligence/giantt/internal/paths"
	"github.com/mesh-intelligence/giantt/pkg/types"
)

const includePrefix = "#include "

// ParseIncludeDirectives reads the contiguous run of #include directives at
// the top of the file. Scanning stops at the first line that is not a
// directive, so includes below the banner or item lines are ignored.
func ParseIncludeDirectives(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &types.StorageError{Path: path, Msg: "reading include directives", Err: err}
	}
	defer f.Close()

	var includes []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, includePrefix) {
			break
		}
		target := strings.TrimSpace(line[len(includePrefix):])
		if target != "" {
			includes = append(includes, target)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &types.StorageError{Path: path, Msg: "reading include directives", Err: err}
	}
	return includes, nil
}

// AddInclude inserts a #include directive after any existing directives at
// the top of path. A directive for the same target is not added twice.
func AddInclude(path, target string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &types.StorageError{Path: path, Msg: "reading file", Err: err}
	}

	lines := strings.Split(string(data), "\n")
	insertAt := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, includePrefix) {
			break
		}
		if strings.TrimSpace(trimmed[len(includePrefix):]) == target {
			return nil
		}
		insertAt = i + 1
	}

	updated := make([]string, 0, len(lines)+1)
	updated = append(updated, lines[:insertAt]...)
	updated = append(updated, includePrefix+target)
	updated = append(updated, lines[insertAt:]...)

	if _, err := CreateBackup(path); err != nil {
		return err
	}
	if err := WriteFiles([]FileWrite{{Path: path, Data: []byte(strings.Join(updated, "\n"))}}); err != nil {
		return err
	}
	_, err = PruneBackups(path, DefaultBackupKeep)
	return err
}

// IncludeNode is one file in the include tree reported by IncludeTree.
type IncludeNode struct {
	Path     string
	Missing  bool
	Circular bool
	Children []*IncludeNode
}

// IncludeTree walks the include structure rooted at path. When recursive is
// false only the root's direct includes are listed. Files already on the
// current chain are marked Circular and not descended into; unreadable files
// are marked Missing.
func IncludeTree(path string, recursive bool) *IncludeNode {
	return buildIncludeTree(paths.Normalize(path), recursive, map[string]bool{})
}

func buildIncludeTree(path string, recursive bool, chain map[string]bool) *IncludeNode {
	node := &IncludeNode{Path: path}
	if chain[path] {
		node.Circular = true
		return node
	}
	includes, err := ParseIncludeDirectives(path)
	if err != nil {
		node.Missing = true
		return node
	}

	chain[path] = true
	defer delete(chain, path)

	for _, inc := range includes {
		resolved := paths.ResolveRelative(path, inc)
		if !recursive {
			child := &IncludeNode{Path: resolved}
			if _, err := os.Stat(resolved); err != nil {
				child.Missing = true
			}
			node.Children = append(node.Children, child)
			continue
		}
		node.Children = append(node.Children, buildIncludeTree(resolved, true, chain))
	}
	return node
}
