package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/trebuchet-org/zkdeploy/internal/domain"
)

// SetupViper creates the viper instance backing global flags and
// environment overrides.
func SetupViper(projectRoot string) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("ZKDEPLOY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.Set("project_root", projectRoot)
	return v
}

// Provider assembles the RuntimeConfig from zkdeploy.toml, the
// optional networks.yaml overlay, .env files and viper-bound flags.
func Provider(v *viper.Viper) (*RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	loadEnvFiles(projectRoot)

	raw, err := loadConfigFile(projectRoot)
	if err != nil {
		return nil, err
	}

	cfg := &RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, ".zkdeploy"),
		ArtifactsDir:   filepath.Join(projectRoot, raw.Defaults.Artifacts),
		Namespace:      raw.Defaults.Namespace,
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Debug:          v.GetBool("debug"),
		Timeout:        v.GetDuration("timeout"),
		PrivateKey:     deployerKeyFromEnv(),
		Networks:       make(map[string]*domain.NetworkTarget),
	}

	if cfg.ArtifactsDir == projectRoot {
		cfg.ArtifactsDir = filepath.Join(projectRoot, "artifacts-zk")
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "default"
	}
	if ns := v.GetString("namespace"); ns != "" {
		cfg.Namespace = ns
	}
	if dir := v.GetString("artifacts"); dir != "" {
		if filepath.IsAbs(dir) {
			cfg.ArtifactsDir = dir
		} else {
			cfg.ArtifactsDir = filepath.Join(projectRoot, dir)
		}
	}

	for name, nt := range raw.Networks {
		cfg.Networks[name] = &domain.NetworkTarget{
			Name: name,
			L1:   os.ExpandEnv(nt.L1),
			L2:   os.ExpandEnv(nt.L2),
		}
	}
	if err := overlayNetworksYAML(projectRoot, cfg.Networks); err != nil {
		return nil, err
	}

	networkName := v.GetString("network")
	if networkName == "" {
		networkName = raw.Defaults.Network
	}
	if networkName != "" {
		target, ok := cfg.Networks[networkName]
		if !ok {
			return nil, fmt.Errorf("network '%s' not declared in %s", networkName, ConfigFileName)
		}
		cfg.Target = target
	}

	return cfg, nil
}

// FindProjectRoot walks up from the working directory until it finds
// zkdeploy.toml.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ConfigFileName)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found in current directory or any parent", ConfigFileName)
		}
		dir = parent
	}
}

func loadEnvFiles(projectRoot string) {
	for _, name := range []string{".env", ".env.local"} {
		envFile := filepath.Join(projectRoot, name)
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

func loadConfigFile(projectRoot string) (*zkdeployTOML, error) {
	var raw zkdeployTOML
	path := filepath.Join(projectRoot, ConfigFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &raw, nil
	}
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ConfigFileName, err)
	}
	return &raw, nil
}

func overlayNetworksYAML(projectRoot string, networks map[string]*domain.NetworkTarget) error {
	path := filepath.Join(projectRoot, "networks.yaml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var overlay networksYAML
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("failed to parse networks.yaml: %w", err)
	}
	for name, nt := range overlay.Networks {
		networks[name] = &domain.NetworkTarget{
			Name: name,
			L1:   os.ExpandEnv(nt.L1),
			L2:   os.ExpandEnv(nt.L2),
		}
	}
	return nil
}

func deployerKeyFromEnv() string {
	for _, key := range []string{"ZKDEPLOY_PRIVATE_KEY", "PRIVATE_KEY"} {
		if val := os.Getenv(key); val != "" {
			return strings.TrimPrefix(val, "0x")
		}
	}
	return ""
}
