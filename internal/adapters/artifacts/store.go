// Package artifacts resolves contract identifiers against the zksolc
// compilation output directory.
package artifacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"

	"github.com/trebuchet-org/zkdeploy/internal/config"
	"github.com/trebuchet-org/zkdeploy/internal/domain"
	"github.com/trebuchet-org/zkdeploy/internal/domain/models"
)

// Store indexes compiled artifacts on disk and resolves bare or
// fully-qualified contract names against them.
type Store struct {
	dir string
	log *slog.Logger

	mu      sync.RWMutex
	indexed bool
	byFQN   map[string]*models.Artifact
	byName  map[string][]*models.Artifact
}

// NewStore creates a store over the configured artifacts directory.
// Indexing happens lazily on first access.
func NewStore(cfg *config.RuntimeConfig, log *slog.Logger) *Store {
	return &Store{
		dir:    cfg.ArtifactsDir,
		log:    log,
		byFQN:  make(map[string]*models.Artifact),
		byName: make(map[string][]*models.Artifact),
	}
}

// ReadArtifact resolves an identifier to its artifact. A bare name
// must be unique across the project; ambiguity reports every valid
// fully-qualified alternative.
func (s *Store) ReadArtifact(ctx context.Context, identifier string) (*models.Artifact, error) {
	if err := s.ensureIndexed(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if strings.Contains(identifier, ":") {
		if artifact, ok := s.byFQN[identifier]; ok {
			return artifact, nil
		}
		return nil, &domain.ArtifactNotFoundError{Identifier: identifier, Suggestions: s.suggest(identifier)}
	}

	matches := s.byName[identifier]
	switch len(matches) {
	case 0:
		return nil, &domain.ArtifactNotFoundError{Identifier: identifier, Suggestions: s.suggest(identifier)}
	case 1:
		return matches[0], nil
	default:
		candidates := lo.Map(matches, func(a *models.Artifact, _ int) string {
			return a.FullyQualifiedName()
		})
		sort.Strings(candidates)
		return nil, &domain.AmbiguousIdentifierError{Identifier: identifier, Candidates: candidates}
	}
}

// ListArtifacts returns every indexed artifact.
func (s *Store) ListArtifacts(ctx context.Context) ([]*models.Artifact, error) {
	if err := s.ensureIndexed(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Values(s.byFQN), nil
}

// Reindex drops the index and rebuilds it on next access. Useful after
// a recompilation within one process.
func (s *Store) Reindex() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.indexed = false
	s.byFQN = make(map[string]*models.Artifact)
	s.byName = make(map[string][]*models.Artifact)
}

func (s *Store) ensureIndexed() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexed {
		return nil
	}

	if _, err := os.Stat(s.dir); os.IsNotExist(err) {
		return fmt.Errorf("artifact directory %s not found: compile the project with zksolc first", s.dir)
	}

	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		// Debug-info twins sit next to each artifact.
		if strings.HasSuffix(path, ".dbg.json") {
			return nil
		}
		return s.indexFile(path)
	})
	if err != nil {
		return fmt.Errorf("indexing artifacts in %s: %w", s.dir, err)
	}

	s.indexed = true
	s.log.Debug("indexed artifacts", "dir", s.dir, "count", len(s.byFQN))
	return nil
}

func (s *Store) indexFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		// Not every JSON file in the output tree is an artifact.
		return nil
	}
	if artifact.ContractName == "" || artifact.SourceName == "" {
		return nil
	}

	s.byFQN[artifact.FullyQualifiedName()] = &artifact
	s.byName[artifact.ContractName] = append(s.byName[artifact.ContractName], &artifact)
	return nil
}

// suggest returns close name matches for a miss.
func (s *Store) suggest(identifier string) []string {
	names := lo.Keys(s.byFQN)
	sort.Strings(names)

	matches := fuzzy.Find(identifier, names)
	suggestions := make([]string, 0, 3)
	for i, m := range matches {
		if i == 3 {
			break
		}
		suggestions = append(suggestions, m.Str)
	}
	return suggestions
}
