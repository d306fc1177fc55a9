package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"molinolab.org/plant-mapping-service/pkg/common"
	"molinolab.org/plant-mapping-service/pkg/models"
	"molinolab.org/plant-mapping-service/pkg/plantmap"
)

// FileAdapter persists the snapshot as a single JSON file. Load bootstraps a
// missing file with an empty snapshot; a file that exists but cannot be
// parsed is a storage error, never silently replaced.
type FileAdapter struct {
	path string
}

func NewFileAdapter(path string) *FileAdapter {
	return &FileAdapter{path: path}
}

func (f *FileAdapter) Load() (*models.Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		snap := &models.Snapshot{Associations: []models.Association{}}
		if err := f.Save(snap); err != nil {
			return nil, err
		}
		common.GetLoggerWith(
			common.LoggerNamePlantmapCore,
			zap.String(common.LoggerFieldCategory, common.LoggerCategoryStore),
		).Warn("Snapshot file missing, created empty one", zap.String("path", f.path))
		return snap, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", plantmap.ErrStorage, f.path, err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: malformed snapshot %s: %v", plantmap.ErrStorage, f.path, err)
	}
	if snap.Associations == nil {
		snap.Associations = []models.Association{}
	}
	return &snap, nil
}

// Save rewrites the whole file. Write-to-temp plus rename keeps a crashed
// write from leaving a half-written snapshot behind.
func (f *FileAdapter) Save(snap *models.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(f.path), os.ModePerm); err != nil {
		return fmt.Errorf("%w: mkdir for %s: %v", plantmap.ErrStorage, f.path, err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode snapshot: %v", plantmap.ErrStorage, err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", plantmap.ErrStorage, tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("%w: rename %s: %v", plantmap.ErrStorage, tmp, err)
	}
	return nil
}
