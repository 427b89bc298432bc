// Package registry persists confirmed deployments under the project's
// data directory.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/samber/lo"

	"github.com/trebuchet-org/zkdeploy/internal/config"
	"github.com/trebuchet-org/zkdeploy/internal/domain/models"
)

const registryFileName = "deployments.json"

// registryFile is the on-disk shape of the registry.
type registryFile struct {
	Version     int                  `json:"version"`
	Deployments []*models.Deployment `json:"deployments"`
}

// FileStore keeps deployment records in a single JSON file, rewritten
// atomically on every save.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store under the configured data directory.
func NewFileStore(cfg *config.RuntimeConfig) *FileStore {
	return &FileStore{path: filepath.Join(cfg.DataDir, registryFileName)}
}

// SaveDeployment inserts or replaces the record with the same ID.
func (s *FileStore) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, err := s.load()
	if err != nil {
		return err
	}

	reg.Deployments = lo.Reject(reg.Deployments, func(d *models.Deployment, _ int) bool {
		return d.ID == deployment.ID
	})
	reg.Deployments = append(reg.Deployments, deployment)

	return s.write(reg)
}

// GetDeployment returns the record with the given ID.
func (s *FileStore) GetDeployment(ctx context.Context, id string) (*models.Deployment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, err := s.load()
	if err != nil {
		return nil, err
	}
	deployment, ok := lo.Find(reg.Deployments, func(d *models.Deployment) bool {
		return d.ID == id
	})
	if !ok {
		return nil, fmt.Errorf("deployment %s not found", id)
	}
	return deployment, nil
}

// ListDeployments returns every record.
func (s *FileStore) ListDeployments(ctx context.Context) ([]*models.Deployment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, err := s.load()
	if err != nil {
		return nil, err
	}
	return reg.Deployments, nil
}

func (s *FileStore) load() (*registryFile, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &registryFile{Version: 1}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading registry: %w", err)
	}

	var reg registryFile
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parsing registry %s: %w", s.path, err)
	}
	return &reg, nil
}

func (s *FileStore) write(reg *registryFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
