package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/zkdeploy/internal/domain"
	"github.com/trebuchet-org/zkdeploy/internal/domain/models"
	"github.com/trebuchet-org/zkdeploy/internal/usecase"
	"github.com/trebuchet-org/zkdeploy/pkg/zktx"
)

// MockArtifactStore is a mock implementation of ArtifactStore.
type MockArtifactStore struct {
	mock.Mock
}

func (m *MockArtifactStore) ReadArtifact(ctx context.Context, identifier string) (*models.Artifact, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artifact), args.Error(1)
}

func (m *MockArtifactStore) ListArtifacts(ctx context.Context) ([]*models.Artifact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Artifact), args.Error(1)
}

// fakeL2 is a scripted rollup client that counts every call so tests
// can prove estimation never mutates network state.
type fakeL2 struct {
	gas      uint64
	gasPrice *big.Int
	chainID  *big.Int
	nonce    uint64
	receipt  *models.Receipt

	estimateErr error
	gasPriceErr error
	sendErr     error
	waitErr     error

	estimateCalls int
	sendCalls     int

	lastCall zktx.CallMsg
	lastRaw  []byte
}

func (f *fakeL2) ChainID(ctx context.Context) (*big.Int, error) { return f.chainID, nil }

func (f *fakeL2) EstimateGas(ctx context.Context, call zktx.CallMsg) (uint64, error) {
	f.estimateCalls++
	f.lastCall = call
	if f.estimateErr != nil {
		return 0, f.estimateErr
	}
	return f.gas, nil
}

func (f *fakeL2) GasPrice(ctx context.Context) (*big.Int, error) {
	if f.gasPriceErr != nil {
		return nil, f.gasPriceErr
	}
	return f.gasPrice, nil
}

func (f *fakeL2) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return f.nonce, nil
}

func (f *fakeL2) SendRawTransaction(ctx context.Context, raw []byte) (common.Hash, error) {
	f.sendCalls++
	f.lastRaw = raw
	if f.sendErr != nil {
		return common.Hash{}, f.sendErr
	}
	return common.HexToHash("0x1234"), nil
}

func (f *fakeL2) WaitMined(ctx context.Context, txHash common.Hash) (*models.Receipt, error) {
	if f.waitErr != nil {
		return nil, f.waitErr
	}
	return f.receipt, nil
}

// fakeWallet signs with a fixed dummy signature; signature validity is
// covered by the zktx package tests.
type fakeWallet struct {
	addr common.Address
}

func (w *fakeWallet) Address() common.Address { return w.addr }

func (w *fakeWallet) SignTransaction(ctx context.Context, tx *zktx.Transaction) ([]byte, error) {
	sig := make([]byte, 65)
	for i := range sig {
		sig[i] = 0x42
	}
	return tx.RawWithSignature(sig)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// wordBytecode returns a hex bytecode of n 32-byte words whose bytes
// all equal fill.
func wordBytecode(n int, fill byte) string {
	return "0x" + strings.Repeat(fmt.Sprintf("%02x", fill), 32*n)
}

func testArtifact(name string) *models.Artifact {
	return &models.Artifact{
		Format:       models.ZksolcArtifactFormat,
		ContractName: name,
		SourceName:   fmt.Sprintf("contracts/%s.sol", name),
		ABI:          []byte(`[]`),
		Bytecode:     wordBytecode(1, 0xaa),
	}
}

func TestLoadArtifact(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects foreign compiler format", func(t *testing.T) {
		artifact := testArtifact("Greeter")
		artifact.Format = "hh-sol-artifact-1"

		store := new(MockArtifactStore)
		store.On("ReadArtifact", ctx, "Greeter").Return(artifact, nil)

		uc := usecase.NewLoadArtifact(store, testLogger())
		_, err := uc.Run(ctx, "Greeter")

		var incompatible *domain.IncompatibleCompilerError
		require.ErrorAs(t, err, &incompatible)
		assert.Equal(t, "Greeter", incompatible.Identifier)
		assert.Contains(t, err.Error(), "zksolc")
	})

	t.Run("bare and fully-qualified names load the same artifact", func(t *testing.T) {
		artifact := testArtifact("Greeter")

		store := new(MockArtifactStore)
		store.On("ReadArtifact", ctx, "Greeter").Return(artifact, nil)
		store.On("ReadArtifact", ctx, "contracts/Greeter.sol:Greeter").Return(artifact, nil)

		uc := usecase.NewLoadArtifact(store, testLogger())
		byName, err := uc.Run(ctx, "Greeter")
		require.NoError(t, err)
		byFQN, err := uc.Run(ctx, "contracts/Greeter.sol:Greeter")
		require.NoError(t, err)

		assert.Equal(t, byName, byFQN)
	})

	t.Run("propagates ambiguity from the store", func(t *testing.T) {
		ambiguous := &domain.AmbiguousIdentifierError{
			Identifier: "Token",
			Candidates: []string{"contracts/A.sol:Token", "contracts/B.sol:Token"},
		}
		store := new(MockArtifactStore)
		store.On("ReadArtifact", ctx, "Token").Return(nil, ambiguous)

		uc := usecase.NewLoadArtifact(store, testLogger())
		_, err := uc.Run(ctx, "Token")

		var got *domain.AmbiguousIdentifierError
		require.ErrorAs(t, err, &got)
		assert.Contains(t, err.Error(), "contracts/A.sol:Token")
		assert.Contains(t, err.Error(), "contracts/B.sol:Token")
	})
}

func TestExtractFactoryDeps(t *testing.T) {
	ctx := context.Background()

	t.Run("empty mapping yields empty sequence", func(t *testing.T) {
		store := new(MockArtifactStore)
		loader := usecase.NewLoadArtifact(store, testLogger())
		uc := usecase.NewExtractFactoryDeps(loader, testLogger())

		deps, err := uc.Run(ctx, testArtifact("Greeter"))
		require.NoError(t, err)
		assert.Empty(t, deps)
	})

	t.Run("preserves declaration order", func(t *testing.T) {
		artifact := testArtifact("Factory")
		artifact.FactoryDeps.Add("0x01", "contracts/First.sol:First")
		artifact.FactoryDeps.Add("0x02", "contracts/Second.sol:Second")
		artifact.FactoryDeps.Add("0x03", "contracts/Third.sol:Third")

		first := testArtifact("First")
		first.Bytecode = wordBytecode(1, 0x01)
		second := testArtifact("Second")
		second.Bytecode = wordBytecode(1, 0x02)
		third := testArtifact("Third")
		third.Bytecode = wordBytecode(1, 0x03)

		store := new(MockArtifactStore)
		store.On("ReadArtifact", ctx, "contracts/First.sol:First").Return(first, nil)
		store.On("ReadArtifact", ctx, "contracts/Second.sol:Second").Return(second, nil)
		store.On("ReadArtifact", ctx, "contracts/Third.sol:Third").Return(third, nil)

		loader := usecase.NewLoadArtifact(store, testLogger())
		uc := usecase.NewExtractFactoryDeps(loader, testLogger())

		deps, err := uc.Run(ctx, artifact)
		require.NoError(t, err)
		require.Len(t, deps, 3)
		assert.Equal(t, []string{first.Bytecode, second.Bytecode, third.Bytecode}, deps)
	})

	t.Run("fails atomically when a dependency cannot load", func(t *testing.T) {
		artifact := testArtifact("Factory")
		artifact.FactoryDeps.Add("0x01", "contracts/First.sol:First")
		artifact.FactoryDeps.Add("0x02", "contracts/Missing.sol:Missing")

		first := testArtifact("First")
		store := new(MockArtifactStore)
		store.On("ReadArtifact", ctx, "contracts/First.sol:First").Return(first, nil)
		store.On("ReadArtifact", ctx, "contracts/Missing.sol:Missing").
			Return(nil, &domain.ArtifactNotFoundError{Identifier: "contracts/Missing.sol:Missing"})

		loader := usecase.NewLoadArtifact(store, testLogger())
		uc := usecase.NewExtractFactoryDeps(loader, testLogger())

		deps, err := uc.Run(ctx, artifact)
		assert.Nil(t, deps, "no partial dependency list")

		var depErr *domain.DependencyResolutionError
		require.ErrorAs(t, err, &depErr)
		assert.Equal(t, "contracts/Missing.sol:Missing", depErr.Reference)
	})
}

func newEstimator(store *MockArtifactStore, l2 *fakeL2, wallet *fakeWallet) *usecase.EstimateDeployFee {
	loader := usecase.NewLoadArtifact(store, testLogger())
	deps := usecase.NewExtractFactoryDeps(loader, testLogger())
	return usecase.NewEstimateDeployFee(deps, l2, wallet, usecase.NopProgress{}, testLogger())
}

func TestEstimateDeployFee(t *testing.T) {
	ctx := context.Background()
	wallet := &fakeWallet{addr: common.HexToAddress("0x36615cf349d7f6344891b1e7ca7c72883f5dc049")}

	t.Run("fee is exactly gas times gas price", func(t *testing.T) {
		l2 := &fakeL2{gas: 4_100_000, gasPrice: big.NewInt(250_000_000)}
		uc := newEstimator(new(MockArtifactStore), l2, wallet)

		fee, err := uc.Run(ctx, usecase.EstimateParams{Artifact: testArtifact("Greeter")})
		require.NoError(t, err)

		want := new(big.Int).Mul(big.NewInt(4_100_000), big.NewInt(250_000_000))
		assert.Zero(t, want.Cmp(fee))
	})

	t.Run("never broadcasts", func(t *testing.T) {
		l2 := &fakeL2{gas: 1, gasPrice: big.NewInt(1)}
		uc := newEstimator(new(MockArtifactStore), l2, wallet)

		_, err := uc.Run(ctx, usecase.EstimateParams{Artifact: testArtifact("Greeter")})
		require.NoError(t, err)
		assert.Equal(t, 1, l2.estimateCalls)
		assert.Zero(t, l2.sendCalls, "estimation must not mutate network state")
	})

	t.Run("omitted fee token means native currency", func(t *testing.T) {
		l2 := &fakeL2{gas: 1, gasPrice: big.NewInt(1)}
		uc := newEstimator(new(MockArtifactStore), l2, wallet)

		_, err := uc.Run(ctx, usecase.EstimateParams{Artifact: testArtifact("Greeter")})
		require.NoError(t, err)
		require.NotNil(t, l2.lastCall.Meta)
		require.NotNil(t, l2.lastCall.Meta.FeeToken)
		defaulted := *l2.lastCall.Meta.FeeToken

		native := zktx.NativeToken
		_, err = uc.Run(ctx, usecase.EstimateParams{Artifact: testArtifact("Greeter"), FeeToken: &native})
		require.NoError(t, err)
		assert.Equal(t, *l2.lastCall.Meta.FeeToken, defaulted)
		assert.Equal(t, zktx.NativeToken, defaulted)
	})

	t.Run("sender is the wallet address", func(t *testing.T) {
		l2 := &fakeL2{gas: 1, gasPrice: big.NewInt(1)}
		uc := newEstimator(new(MockArtifactStore), l2, wallet)

		_, err := uc.Run(ctx, usecase.EstimateParams{Artifact: testArtifact("Greeter")})
		require.NoError(t, err)
		assert.Equal(t, wallet.addr, l2.lastCall.From)
	})

	t.Run("surfaces rpc errors verbatim", func(t *testing.T) {
		rpcErr := errors.New("connection refused")
		l2 := &fakeL2{estimateErr: rpcErr}
		uc := newEstimator(new(MockArtifactStore), l2, wallet)

		_, err := uc.Run(ctx, usecase.EstimateParams{Artifact: testArtifact("Greeter")})
		var estErr *domain.EstimationError
		require.ErrorAs(t, err, &estErr)
		assert.ErrorIs(t, err, rpcErr)
		assert.Contains(t, err.Error(), "Greeter")
	})

	t.Run("gas price failure also fails estimation", func(t *testing.T) {
		l2 := &fakeL2{gas: 1, gasPriceErr: errors.New("timeout")}
		uc := newEstimator(new(MockArtifactStore), l2, wallet)

		_, err := uc.Run(ctx, usecase.EstimateParams{Artifact: testArtifact("Greeter")})
		var estErr *domain.EstimationError
		assert.ErrorAs(t, err, &estErr)
	})
}

func newDeployer(store *MockArtifactStore, l2 *fakeL2, wallet *fakeWallet) *usecase.DeployContract {
	loader := usecase.NewLoadArtifact(store, testLogger())
	deps := usecase.NewExtractFactoryDeps(loader, testLogger())
	return usecase.NewDeployContract(deps, l2, wallet, usecase.NopProgress{}, testLogger())
}

func TestDeployContract(t *testing.T) {
	ctx := context.Background()
	wallet := &fakeWallet{addr: common.HexToAddress("0x36615cf349d7f6344891b1e7ca7c72883f5dc049")}
	deployed := common.HexToAddress("0x52aa8a1c47a343cf85c3fdd8a27ab4b3a0c54ef7")

	okReceipt := &models.Receipt{
		ContractAddress: deployed,
		Status:          1,
		GasUsed:         4_000_000,
	}

	t.Run("returns handle only after confirmation", func(t *testing.T) {
		l2 := &fakeL2{gas: 4_100_000, gasPrice: big.NewInt(1), chainID: big.NewInt(280), nonce: 7, receipt: okReceipt}
		uc := newDeployer(new(MockArtifactStore), l2, wallet)

		artifact := testArtifact("Greeter")
		handle, err := uc.Run(ctx, usecase.DeployParams{Artifact: artifact})
		require.NoError(t, err)
		require.NotNil(t, handle)

		assert.Equal(t, deployed, handle.Address)
		assert.Equal(t, "Greeter", handle.Name)
		assert.Equal(t, 1, l2.sendCalls)

		// The broadcast transaction carries what was built: the
		// contract's own bytecode rides first in the factory deps.
		tx, _, err := zktx.DecodeRaw(l2.lastRaw)
		require.NoError(t, err)
		assert.Equal(t, wallet.addr, tx.From)
		assert.Equal(t, zktx.ContractDeployerAddress, tx.To)
		assert.Equal(t, uint64(7), tx.Nonce.Uint64())
		require.Len(t, tx.FactoryDeps, 1)
		assert.Equal(t, zktx.NativeToken, tx.FeeToken)
	})

	t.Run("reverted deployment yields no handle", func(t *testing.T) {
		reverted := &models.Receipt{ContractAddress: deployed, Status: 0}
		l2 := &fakeL2{gas: 1, gasPrice: big.NewInt(1), chainID: big.NewInt(280), receipt: reverted}
		uc := newDeployer(new(MockArtifactStore), l2, wallet)

		handle, err := uc.Run(ctx, usecase.DeployParams{Artifact: testArtifact("Greeter")})
		assert.Nil(t, handle)

		var depErr *domain.DeploymentError
		require.ErrorAs(t, err, &depErr)
		assert.Contains(t, err.Error(), "reverted")
	})

	t.Run("broadcast failure surfaces unmodified", func(t *testing.T) {
		sendErr := errors.New("insufficient funds for gas")
		l2 := &fakeL2{gas: 1, gasPrice: big.NewInt(1), chainID: big.NewInt(280), sendErr: sendErr}
		uc := newDeployer(new(MockArtifactStore), l2, wallet)

		handle, err := uc.Run(ctx, usecase.DeployParams{Artifact: testArtifact("Greeter")})
		assert.Nil(t, handle)
		assert.ErrorIs(t, err, sendErr)
	})

	t.Run("confirmation timeout surfaces unmodified", func(t *testing.T) {
		waitErr := context.DeadlineExceeded
		l2 := &fakeL2{gas: 1, gasPrice: big.NewInt(1), chainID: big.NewInt(280), waitErr: waitErr}
		uc := newDeployer(new(MockArtifactStore), l2, wallet)

		handle, err := uc.Run(ctx, usecase.DeployParams{Artifact: testArtifact("Greeter")})
		assert.Nil(t, handle)
		assert.ErrorIs(t, err, waitErr)
	})

	t.Run("factory dependencies ride along in order", func(t *testing.T) {
		artifact := testArtifact("Factory")
		artifact.FactoryDeps.Add("0x01", "contracts/Child.sol:Child")

		child := testArtifact("Child")
		child.Bytecode = wordBytecode(3, 0x33)

		store := new(MockArtifactStore)
		store.On("ReadArtifact", ctx, "contracts/Child.sol:Child").Return(child, nil)

		l2 := &fakeL2{gas: 1, gasPrice: big.NewInt(1), chainID: big.NewInt(280), receipt: okReceipt}
		uc := newDeployer(store, l2, wallet)

		_, err := uc.Run(ctx, usecase.DeployParams{Artifact: artifact})
		require.NoError(t, err)

		tx, _, err := zktx.DecodeRaw(l2.lastRaw)
		require.NoError(t, err)
		require.Len(t, tx.FactoryDeps, 2)
		assert.Len(t, tx.FactoryDeps[0], 32, "own bytecode first")
		assert.Len(t, tx.FactoryDeps[1], 96, "child bytecode second")
	})

	t.Run("rejects wrong constructor arity", func(t *testing.T) {
		artifact := testArtifact("Greeter")
		artifact.ABI = []byte(`[{"type":"constructor","inputs":[{"name":"greeting","type":"string"}]}]`)

		l2 := &fakeL2{gas: 1, gasPrice: big.NewInt(1), chainID: big.NewInt(280), receipt: okReceipt}
		uc := newDeployer(new(MockArtifactStore), l2, wallet)

		_, err := uc.Run(ctx, usecase.DeployParams{Artifact: artifact})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "constructor")
		assert.Zero(t, l2.sendCalls)
	})
}
