package domain

import (
	"fmt"
	"strings"
)

// RequiredCompiler is the toolchain that must have produced every
// artifact this tool touches. Bytecode from the generic solc pipeline
// does not run on the rollup VM.
const RequiredCompiler = "zksolc"

// AmbiguousIdentifierError is returned when a bare contract name
// matches more than one compiled contract. Candidates holds the
// fully-qualified names that would disambiguate.
type AmbiguousIdentifierError struct {
	Identifier string
	Candidates []string
}

func (e *AmbiguousIdentifierError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "multiple artifacts found for '%s' - use the fully-qualified source.sol:Name form:", e.Identifier)
	for _, c := range e.Candidates {
		sb.WriteString("\n  - ")
		sb.WriteString(c)
	}
	return sb.String()
}

// IncompatibleCompilerError is returned when an artifact's format tag
// does not match the tag of the required compiler.
type IncompatibleCompilerError struct {
	Identifier string
	Format     string
}

func (e *IncompatibleCompilerError) Error() string {
	return fmt.Sprintf("artifact '%s' has format %q; it was not compiled with %s and cannot be deployed - recompile with %s",
		e.Identifier, e.Format, RequiredCompiler, RequiredCompiler)
}

// ArtifactNotFoundError is returned when no compiled contract matches
// an identifier. Suggestions, when present, are close name matches.
type ArtifactNotFoundError struct {
	Identifier  string
	Suggestions []string
}

func (e *ArtifactNotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("artifact '%s' not found", e.Identifier)
	}
	return fmt.Sprintf("artifact '%s' not found, did you mean: %s", e.Identifier, strings.Join(e.Suggestions, ", "))
}

// DependencyResolutionError is returned when a declared factory
// dependency cannot be loaded. Resolution is atomic: the caller never
// sees a partial dependency list.
type DependencyResolutionError struct {
	Contract  string
	Reference string
	Err       error
}

func (e *DependencyResolutionError) Error() string {
	return fmt.Sprintf("resolving factory dependency %q of contract '%s': %v", e.Reference, e.Contract, e.Err)
}

func (e *DependencyResolutionError) Unwrap() error { return e.Err }

// EstimationError is returned when the gas or gas-price query fails.
// The underlying RPC error is carried verbatim; the core never retries.
type EstimationError struct {
	Contract string
	Err      error
}

func (e *EstimationError) Error() string {
	return fmt.Sprintf("estimating deployment fee for contract '%s': %v", e.Contract, e.Err)
}

func (e *EstimationError) Unwrap() error { return e.Err }

// DeploymentError is returned when broadcast or confirmation fails,
// including on-chain reverts. No handle is ever returned alongside it.
type DeploymentError struct {
	Contract string
	TxHash   string
	Err      error
}

func (e *DeploymentError) Error() string {
	if e.TxHash != "" {
		return fmt.Sprintf("deploying contract '%s' (tx %s): %v", e.Contract, e.TxHash, e.Err)
	}
	return fmt.Sprintf("deploying contract '%s': %v", e.Contract, e.Err)
}

func (e *DeploymentError) Unwrap() error { return e.Err }
