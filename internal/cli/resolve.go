package cli

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/trebuchet-org/zkdeploy/internal/adapters/interactive"
	"github.com/trebuchet-org/zkdeploy/internal/adapters/parameters"
	"github.com/trebuchet-org/zkdeploy/internal/adapters/progress"
	"github.com/trebuchet-org/zkdeploy/internal/app"
	"github.com/trebuchet-org/zkdeploy/internal/config"
	"github.com/trebuchet-org/zkdeploy/internal/domain"
	"github.com/trebuchet-org/zkdeploy/internal/domain/models"
	"github.com/trebuchet-org/zkdeploy/internal/usecase"
)

// resolveArtifact loads the artifact for an identifier. When a bare
// name is ambiguous and the session is interactive it prompts the user
// to pick one of the candidates instead of failing.
func resolveArtifact(cmd *cobra.Command, a *app.App, identifier string) (*models.Artifact, error) {
	artifact, err := a.LoadArtifact.Run(cmd.Context(), identifier)
	if err == nil {
		return artifact, nil
	}

	var ambiguous *domain.AmbiguousIdentifierError
	if !errors.As(err, &ambiguous) || a.Config.NonInteractive || a.Config.JSON {
		return nil, err
	}

	candidates := make([]*models.Artifact, 0, len(ambiguous.Candidates))
	for _, fqn := range ambiguous.Candidates {
		candidate, err := a.LoadArtifact.Run(cmd.Context(), fqn)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, candidate)
	}

	selector := interactive.NewSelectorAdapter(a.Config)
	return selector.SelectArtifact(cmd.Context(), candidates,
		fmt.Sprintf("Multiple contracts match '%s', pick one", identifier))
}

// coerceConstructorArgs validates the raw command-line arguments
// against the artifact's constructor and converts them to the Go
// values the ABI encoder expects.
func coerceConstructorArgs(artifact *models.Artifact, raw []string) ([]any, error) {
	parsed, err := abi.JSON(strings.NewReader(string(artifact.ABI)))
	if err != nil {
		return nil, fmt.Errorf("parsing ABI of %s: %w", artifact.FullyQualifiedName(), err)
	}
	return parameters.CoerceArgs(parsed.Constructor.Inputs, raw)
}

// parseFeeToken parses the --fee-token flag, nil when unset.
func parseFeeToken(raw string) (*common.Address, error) {
	if raw == "" {
		return nil, nil
	}
	if !common.IsHexAddress(raw) {
		return nil, fmt.Errorf("invalid fee token address: %s", raw)
	}
	addr := common.HexToAddress(raw)
	return &addr, nil
}

// parseValue parses the --value flag as a decimal or 0x-prefixed
// amount in the smallest denomination.
func parseValue(raw string) (*big.Int, error) {
	if raw == "" {
		return nil, nil
	}
	value, ok := new(big.Int).SetString(raw, 0)
	if !ok || value.Sign() < 0 {
		return nil, fmt.Errorf("invalid value: %s", raw)
	}
	return value, nil
}

// progressSink picks the spinner for interactive sessions and a no-op
// sink otherwise so JSON output stays clean.
func progressSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.NonInteractive || cfg.JSON {
		return progress.NewNopSink()
	}
	return progress.NewSpinnerSink()
}
