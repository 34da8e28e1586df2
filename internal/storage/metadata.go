package storage

import (
	"encoding/json"
	"os"

	"github.com/mesh-intelligence/giantt/pkg/types"
)

// LoadMetadata reads the workspace metadata file. A missing file is treated
// as empty metadata.
func LoadMetadata(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, &types.StorageError{Path: path, Msg: "reading metadata", Err: err}
	}
	meta := map[string]any{}
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, &types.StorageError{Path: path, Msg: "parsing metadata", Err: err}
	}
	return meta, nil
}

// SaveMetadata writes the metadata file atomically.
func SaveMetadata(path string, meta map[string]any) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return &types.StorageError{Path: path, Msg: "encoding metadata", Err: err}
	}
	return WriteFiles([]FileWrite{{Path: path, Data: append(data, '\n')}})
}
