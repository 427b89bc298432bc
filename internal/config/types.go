package config

import (
	"time"

	"github.com/trebuchet-org/zkdeploy/internal/domain"
)

// ConfigFileName is the project marker and configuration file.
const ConfigFileName = "zkdeploy.toml"

// RuntimeConfig is the resolved configuration one invocation runs
// with. It is assembled once by Provider and treated as read-only.
type RuntimeConfig struct {
	ProjectRoot  string
	DataDir      string
	ArtifactsDir string
	Namespace    string

	NonInteractive bool
	JSON           bool
	Debug          bool
	Timeout        time.Duration

	// PrivateKey is the hex-encoded deployer key, supplied through the
	// environment so it never lands in a config file.
	PrivateKey string

	// Target is the L1/L2 pair selected for this invocation, nil when
	// no network was requested (e.g. listing artifacts).
	Target *domain.NetworkTarget

	// Networks holds every target declared in zkdeploy.toml and the
	// optional networks.yaml overlay, keyed by name.
	Networks map[string]*domain.NetworkTarget
}

// zkdeployTOML is the raw shape of zkdeploy.toml.
type zkdeployTOML struct {
	Defaults struct {
		Artifacts string `toml:"artifacts"`
		Namespace string `toml:"namespace"`
		Network   string `toml:"network"`
	} `toml:"defaults"`
	Networks map[string]networkTOML `toml:"networks"`
}

type networkTOML struct {
	L1 string `toml:"l1"`
	L2 string `toml:"l2"`
}

// networksYAML is the raw shape of the optional networks.yaml overlay,
// a convenience for ephemeral environments that should not churn the
// committed TOML file.
type networksYAML struct {
	Networks map[string]struct {
		L1 string `yaml:"l1"`
		L2 string `yaml:"l2"`
	} `yaml:"networks"`
}
