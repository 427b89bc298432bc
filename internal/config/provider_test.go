package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProject(t *testing.T, tomlBody string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(tomlBody), 0o644))
	return dir
}

const sampleTOML = `
[defaults]
artifacts = "artifacts-zk"
namespace = "staging"
network = "testnet"

[networks.testnet]
l1 = "sepolia"
l2 = "http://localhost:3050"

[networks.mainnet]
l1 = "mainnet"
l2 = "https://rollup.example.com"
`

func TestProviderLoadsTOML(t *testing.T) {
	dir := writeProject(t, sampleTOML)

	v := SetupViper(dir)
	cfg, err := Provider(v)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(dir, "artifacts-zk"), cfg.ArtifactsDir)
	assert.Equal(t, filepath.Join(dir, ".zkdeploy"), cfg.DataDir)
	assert.Equal(t, "staging", cfg.Namespace)

	require.NotNil(t, cfg.Target)
	assert.Equal(t, "testnet", cfg.Target.Name)
	assert.Equal(t, "sepolia", cfg.Target.L1)
	assert.Equal(t, "http://localhost:3050", cfg.Target.L2)
	assert.Len(t, cfg.Networks, 2)
}

func TestProviderDefaults(t *testing.T) {
	dir := writeProject(t, "")

	cfg, err := Provider(SetupViper(dir))
	require.NoError(t, err)

	assert.Equal(t, "default", cfg.Namespace)
	assert.Equal(t, filepath.Join(dir, "artifacts-zk"), cfg.ArtifactsDir)
	assert.Nil(t, cfg.Target, "no network means no target")
}

func TestProviderFlagOverrides(t *testing.T) {
	dir := writeProject(t, sampleTOML)

	v := SetupViper(dir)
	v.Set("network", "mainnet")
	v.Set("namespace", "production")
	v.Set("artifacts", "out-zk")
	v.Set("debug", "true")

	cfg, err := Provider(v)
	require.NoError(t, err)

	assert.Equal(t, "mainnet", cfg.Target.Name)
	assert.Equal(t, "production", cfg.Namespace)
	assert.Equal(t, filepath.Join(dir, "out-zk"), cfg.ArtifactsDir)
	assert.True(t, cfg.Debug)
}

func TestProviderUnknownNetwork(t *testing.T) {
	dir := writeProject(t, sampleTOML)

	v := SetupViper(dir)
	v.Set("network", "devnet")

	_, err := Provider(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "devnet")
}

func TestProviderNetworksYAMLOverlay(t *testing.T) {
	dir := writeProject(t, sampleTOML)
	overlay := `
networks:
  devnet:
    l1: http://localhost:8545
    l2: http://localhost:3050
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "networks.yaml"), []byte(overlay), 0o644))

	v := SetupViper(dir)
	v.Set("network", "devnet")

	cfg, err := Provider(v)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8545", cfg.Target.L1)
	assert.Equal(t, "http://localhost:3050", cfg.Target.L2)
}

func TestProviderExpandsEnvInEndpoints(t *testing.T) {
	t.Setenv("TEST_ROLLUP_URL", "https://rollup.internal:3050")
	dir := writeProject(t, `
[defaults]
network = "testnet"

[networks.testnet]
l1 = "sepolia"
l2 = "${TEST_ROLLUP_URL}"
`)

	cfg, err := Provider(SetupViper(dir))
	require.NoError(t, err)
	assert.Equal(t, "https://rollup.internal:3050", cfg.Target.L2)
}

func TestProviderPrivateKeyFromEnv(t *testing.T) {
	t.Setenv("ZKDEPLOY_PRIVATE_KEY", "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	dir := writeProject(t, "")

	cfg, err := Provider(SetupViper(dir))
	require.NoError(t, err)
	assert.Equal(t, "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80", cfg.PrivateKey, "0x prefix is stripped")
}

func TestFindProjectRootWalksUp(t *testing.T) {
	dir := writeProject(t, "")
	nested := filepath.Join(dir, "contracts", "tokens")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	t.Chdir(nested)

	root, err := FindProjectRoot()
	require.NoError(t, err)
	assert.Equal(t, resolveSymlinks(t, dir), resolveSymlinks(t, root))
}

func TestFindProjectRootMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := FindProjectRoot()
	require.Error(t, err)
	assert.Contains(t, err.Error(), ConfigFileName)
}

// resolveSymlinks normalizes tmpdir paths that differ only through
// symlinks (macOS /var vs /private/var).
func resolveSymlinks(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return resolved
}
