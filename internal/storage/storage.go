// Package storage persists the item graph and activity logs as text files.
// Items live in a dual include/occlude pair of notation files that support
// recursive #include directives; logs live in a matching pair of JSONL
// files. All replacements go through temp-file-then-rename writes with
// numbered backups of the previous contents.
package storage

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/giantt/internal/paths"
	"github.com/mesh-intelligence/giantt/pkg/graph"
	"github.com/mesh-intelligence/giantt/pkg/notation"
	"github.com/mesh-intelligence/giantt/pkg/types"
)

// Store reads and writes giantt workspace files.
type Store struct {
	logger     zerolog.Logger
	backupKeep int
}

// New returns a Store that reports diagnostics through logger and keeps
// DefaultBackupKeep numbered backups per file.
func New(logger zerolog.Logger) *Store {
	return &Store{logger: logger, backupKeep: DefaultBackupKeep}
}

// SetBackupKeep overrides how many backups survive pruning after a save.
func (s *Store) SetBackupKeep(keep int) {
	s.backupKeep = keep
}

// LoadGraph loads the full item graph from the include and occlude files,
// resolving #include directives in both. Items from the occlude file and its
// includes are marked occluded. A cycle among included files fails the load
// with an IncludeCycleError; a malformed item line fails it with a
// ParseError.
func (s *Store) LoadGraph(includePath, occludePath string) (*graph.Graph, error) {
	visited := map[string]bool{}
	g := graph.New()

	for _, src := range []struct {
		path    string
		occlude bool
	}{
		{includePath, false},
		{occludePath, true},
	} {
		part, err := s.loadItemFile(paths.Normalize(src.path), src.occlude, nil, visited)
		if err != nil {
			return nil, err
		}
		g = g.Merge(part)
	}
	return g, nil
}

// loadItemFile loads one notation file plus everything it includes. chain is
// the directive chain that led here, visited the set of files already merged
// anywhere in this load.
func (s *Store) loadItemFile(path string, occlude bool, chain []string, visited map[string]bool) (*graph.Graph, error) {
	for _, prev := range chain {
		if prev == path {
			cycle := append(append([]string{}, chain...), path)
			return nil, &types.IncludeCycleError{Chain: cycle}
		}
	}
	if visited[path] {
		s.logger.Debug().Str("file", path).Msg("already loaded, skipping")
		return graph.New(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &types.StorageError{Path: path, Msg: "opening items file", Err: err}
	}
	defer f.Close()
	visited[path] = true

	g := graph.New()
	chain = append(chain, path)

	includes, err := ParseIncludeDirectives(path)
	if err != nil {
		return nil, err
	}
	for _, inc := range includes {
		part, err := s.loadItemFile(paths.ResolveRelative(path, inc), occlude, chain, visited)
		if err != nil {
			return nil, err
		}
		g = g.Merge(part)
	}

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		item, err := notation.Parse(line, occlude)
		if err != nil {
			return nil, &types.StorageError{Path: path, Msg: fmt.Sprintf("parsing line %d", lineNo), Err: err}
		}
		g.AddItem(item)
	}
	if err := sc.Err(); err != nil {
		return nil, &types.StorageError{Path: path, Msg: "reading items file", Err: err}
	}
	return g, nil
}

// SaveGraph writes the graph back to the include and occlude files in
// topological order. Existing #include directives at the top of each file are
// carried over; each file is backed up before being replaced and both
// replacements land together or not at all.
func (s *Store) SaveGraph(includePath, occludePath string, g *graph.Graph) error {
	sorted, err := g.TopologicalSort()
	if err != nil {
		return err
	}

	writes := []FileWrite{
		{Path: includePath, Data: renderItemFile(includePath, ItemsBanner(), sorted, false)},
		{Path: occludePath, Data: renderItemFile(occludePath, OccludedItemsBanner(), sorted, true)},
	}

	for _, w := range writes {
		if _, err := CreateBackup(w.Path); err != nil {
			return err
		}
	}
	if err := WriteFiles(writes); err != nil {
		return err
	}
	for _, w := range writes {
		removed, err := PruneBackups(w.Path, s.backupKeep)
		if err != nil {
			return err
		}
		for _, victim := range removed {
			s.logger.Debug().Str("backup", victim).Msg("pruned old backup")
		}
	}
	return nil
}

// renderItemFile produces the full text of one item file: directives first so
// they are picked up on the next load, then the banner, then the item lines.
func renderItemFile(path, banner string, sorted []*types.Item, occlude bool) []byte {
	var b strings.Builder
	includes, err := ParseIncludeDirectives(path)
	if err == nil {
		for _, inc := range includes {
			b.WriteString(includePrefix)
			b.WriteString(inc)
			b.WriteByte('\n')
		}
	}
	b.WriteString(banner)
	b.WriteByte('\n')
	for _, item := range sorted {
		if item.Occlude != occlude {
			continue
		}
		b.WriteString(notation.Serialize(item))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// InitWorkspace creates the include/occlude directory pair under baseDir and
// seeds any missing workspace files. It returns the files it created; an
// empty slice means the workspace was already fully initialized.
func InitWorkspace(baseDir string) ([]string, error) {
	for _, sub := range []string{paths.IncludeDirName, paths.OccludeDirName} {
		dir := filepath.Join(baseDir, sub)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &types.StorageError{Path: dir, Msg: "creating directory", Err: err}
		}
	}

	seeds := []struct {
		path    string
		content string
	}{
		{filepath.Join(baseDir, paths.IncludeDirName, paths.ItemsFileName), ItemsBanner()},
		{filepath.Join(baseDir, paths.IncludeDirName, paths.MetadataFileName), "{}"},
		{filepath.Join(baseDir, paths.IncludeDirName, paths.LogsFileName), ""},
		{filepath.Join(baseDir, paths.OccludeDirName, paths.ItemsFileName), OccludedItemsBanner()},
		{filepath.Join(baseDir, paths.OccludeDirName, paths.MetadataFileName), "{}"},
		{filepath.Join(baseDir, paths.OccludeDirName, paths.LogsFileName), ""},
	}

	var created []string
	for _, seed := range seeds {
		if _, err := os.Stat(seed.path); err == nil {
			continue
		}
		if err := os.WriteFile(seed.path, []byte(seed.content), 0o644); err != nil {
			return created, &types.StorageError{Path: seed.path, Msg: "seeding file", Err: err}
		}
		created = append(created, seed.path)
	}
	return created, nil
}
