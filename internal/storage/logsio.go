package storage

import (
	"bufio"
	"os"
	"strings"

	"github.com/mesh-intelligence/giantt/pkg/logs"
	"github.com/mesh-intelligence/giantt/pkg/types"
)

// LoadLogs reads the include and occlude log files into one collection.
// Entries from the occlude file are marked occluded. Malformed lines are
// logged and skipped so one bad entry cannot lock out the whole history.
func (s *Store) LoadLogs(includePath, occludePath string) (*logs.Collection, error) {
	c := logs.NewCollection()
	for _, src := range []struct {
		path    string
		occlude bool
	}{
		{includePath, false},
		{occludePath, true},
	} {
		if err := s.loadLogFile(c, src.path, src.occlude); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (s *Store) loadLogFile(c *logs.Collection, path string, occlude bool) error {
	f, err := os.Open(path)
	if err != nil {
		return &types.StorageError{Path: path, Msg: "opening logs file", Err: err}
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entry, err := logs.ParseLine(line, occlude)
		if err != nil {
			s.logger.Warn().
				Str("file", path).
				Int("line", lineNo).
				Err(err).
				Msg("skipping invalid log line")
			continue
		}
		c.Add(entry)
	}
	if err := sc.Err(); err != nil {
		return &types.StorageError{Path: path, Msg: "reading logs file", Err: err}
	}
	return nil
}

// SaveLogs writes the collection back to the include and occlude log files,
// split by occlusion, with the same backup and atomic replacement behavior
// as SaveGraph.
func (s *Store) SaveLogs(includePath, occludePath string, c *logs.Collection) error {
	writes := []FileWrite{
		{Path: includePath, Data: renderLogFile(c, false)},
		{Path: occludePath, Data: renderLogFile(c, true)},
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
		if _, err := PruneBackups(w.Path, s.backupKeep); err != nil {
			return err
		}
	}
	return nil
}

func renderLogFile(c *logs.Collection, occlude bool) []byte {
	var b strings.Builder
	for _, entry := range c.Entries() {
		if entry.Occlude != occlude {
			continue
		}
		b.WriteString(logs.SerializeLine(entry))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
