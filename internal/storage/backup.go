package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/giantt/pkg/types"
)

// DefaultBackupKeep is how many numbered backups survive pruning.
const DefaultBackupKeep = 3

// backupPath returns the numbered backup name for path, e.g.
// items.txt.2.backup.
func backupPath(path string, n int) string {
	return fmt.Sprintf("%s.%d.backup", path, n)
}

// backupNumbers returns the backup numbers that exist for path, ascending.
func backupNumbers(path string) ([]int, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing backups: %w", err)
	}

	prefix := base + "."
	var nums []int
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".backup") {
			continue
		}
		mid := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".backup")
		n, err := strconv.Atoi(mid)
		if err != nil || n < 1 {
			continue
		}
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums, nil
}

// CreateBackup copies path to the next unused numbered backup slot. When the
// current content is byte-identical to the newest existing backup no new
// backup is made. Returns the backup path, or "" when nothing was written.
func CreateBackup(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", &types.StorageError{Path: path, Msg: "reading for backup", Err: err}
	}

	nums, err := backupNumbers(path)
	if err != nil {
		return "", &types.StorageError{Path: path, Msg: "scanning backups", Err: err}
	}
	if len(nums) > 0 {
		newest := backupPath(path, nums[len(nums)-1])
		prev, err := os.ReadFile(newest)
		if err == nil && bytes.Equal(prev, data) {
			return "", nil
		}
	}

	next := 1
	if len(nums) > 0 {
		next = nums[len(nums)-1] + 1
	}
	dst := backupPath(path, next)
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", &types.StorageError{Path: dst, Msg: "writing backup", Err: err}
	}
	return dst, nil
}

// RenumberBackups prunes the backups of path to keep and renames the
// survivors to the slots 1 through keep, oldest first. Returns the removed
// paths. Targets are always at or below their sources, so renaming in
// ascending order never clobbers a survivor.
func RenumberBackups(path string, keep int) ([]string, error) {
	removed, err := PruneBackups(path, keep)
	if err != nil {
		return removed, err
	}
	nums, err := backupNumbers(path)
	if err != nil {
		return removed, &types.StorageError{Path: path, Msg: "scanning backups", Err: err}
	}
	for i, n := range nums {
		if n == i+1 {
			continue
		}
		src := backupPath(path, n)
		dst := backupPath(path, i+1)
		if err := os.Rename(src, dst); err != nil {
			return removed, &types.StorageError{Path: src, Msg: "renumbering backup", Err: err}
		}
	}
	return removed, nil
}

// PruneBackups removes the oldest backups of path until at most keep remain.
// Returns the paths that were removed.
func PruneBackups(path string, keep int) ([]string, error) {
	if keep < 0 {
		keep = 0
	}
	nums, err := backupNumbers(path)
	if err != nil {
		return nil, &types.StorageError{Path: path, Msg: "scanning backups", Err: err}
	}
	if len(nums) <= keep {
		return nil, nil
	}

	var removed []string
	for _, n := range nums[:len(nums)-keep] {
		victim := backupPath(path, n)
		if err := os.Remove(victim); err != nil {
			return removed, &types.StorageError{Path: victim, Msg: "removing backup", Err: err}
		}
		removed = append(removed, victim)
	}
	return removed, nil
}
