package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ZksolcArtifactFormat is the format tag written by the zksolc
// toolchain into every artifact it produces. Artifacts carrying any
// other tag are rejected before further processing.
const ZksolcArtifactFormat = "hh-zksolc-artifact-1"

// Artifact is a compiled contract record as emitted by zksolc.
type Artifact struct {
	Format           string          `json:"_format"`
	ContractName     string          `json:"contractName"`
	SourceName       string          `json:"sourceName"`
	ABI              json.RawMessage `json:"abi"`
	Bytecode         string          `json:"bytecode"`
	DeployedBytecode string          `json:"deployedBytecode"`
	// FactoryDeps maps the content hash of each contract this one may
	// instantiate at runtime to its fully-qualified name. Declaration
	// order is significant and preserved through decoding.
	FactoryDeps FactoryDeps `json:"factoryDeps"`
	// SourceMapping relates bytecode to rollup-VM assembly for tracing
	// tools. The deployment path never reads it.
	SourceMapping json.RawMessage `json:"sourceMapping,omitempty"`
}

// FullyQualifiedName returns the source.sol:Name identifier of the
// artifact, the unambiguous form of its contract name.
func (a *Artifact) FullyQualifiedName() string {
	return fmt.Sprintf("%s:%s", a.SourceName, a.ContractName)
}

// IsZksolc reports whether the artifact was produced by the required
// compiler.
func (a *Artifact) IsZksolc() bool {
	return a.Format == ZksolcArtifactFormat
}

// FactoryDep is one declared factory dependency: the hash the bytecode
// is referenced by at runtime and the contract it names.
type FactoryDep struct {
	Hash      string
	Reference string
}

// FactoryDeps is an ordered view of the artifact's factoryDeps JSON
// object. encoding/json's map type forgets object key order, but
// downstream consumers index positionally into the resolved bytecode
// list, so decoding walks the object token by token instead.
type FactoryDeps struct {
	deps []FactoryDep
}

// Entries returns the dependencies in declaration order.
func (d FactoryDeps) Entries() []FactoryDep {
	return d.deps
}

// Len returns the number of declared dependencies.
func (d FactoryDeps) Len() int {
	return len(d.deps)
}

// Add appends a dependency, preserving insertion order. Used by tests
// and fixture builders; decoded artifacts arrive already populated.
func (d *FactoryDeps) Add(hash, reference string) {
	d.deps = append(d.deps, FactoryDep{Hash: hash, Reference: reference})
}

// UnmarshalJSON decodes a JSON object into an ordered dependency list.
func (d *FactoryDeps) UnmarshalJSON(data []byte) error {
	d.deps = nil

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("factoryDeps: expected JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		hash, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("factoryDeps: non-string key %v", keyTok)
		}
		var ref string
		if err := dec.Decode(&ref); err != nil {
			return fmt.Errorf("factoryDeps: value for %s: %w", hash, err)
		}
		d.deps = append(d.deps, FactoryDep{Hash: hash, Reference: ref})
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON writes the dependencies back out as an object in
// declaration order.
func (d FactoryDeps) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, dep := range d.deps {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(dep.Hash)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(dep.Reference)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
