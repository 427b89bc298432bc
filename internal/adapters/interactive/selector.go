// Package interactive prompts the user to disambiguate when a bare
// contract name matches several artifacts.
package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"

	"github.com/trebuchet-org/zkdeploy/internal/config"
	"github.com/trebuchet-org/zkdeploy/internal/domain/models"
)

// SelectorAdapter handles interactive artifact selection.
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter.
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectArtifact picks one artifact from several candidates. In
// non-interactive mode selection is unavailable and the caller keeps
// the ambiguity error instead.
func (s *SelectorAdapter) SelectArtifact(ctx context.Context, candidates []*models.Artifact, prompt string) (*models.Artifact, error) {
	if s.config.NonInteractive {
		return nil, fmt.Errorf("interactive selection not available in non-interactive mode")
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no artifacts provided for selection")
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}

	options := make([]string, len(candidates))
	for i, a := range candidates {
		options[i] = fmt.Sprintf("%s (%s)", a.ContractName, a.SourceName)
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          fuzzySearcher(options),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}
	return candidates[index], nil
}

func fuzzySearcher(options []string) func(string, int) bool {
	return func(input string, index int) bool {
		if strings.TrimSpace(input) == "" {
			return true
		}
		matches := fuzzy.Find(input, []string{options[index]})
		return len(matches) > 0
	}
}
