package zktx

import (
	"bytes"
	"encoding/binary"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashBytecode(t *testing.T) {
	t.Run("valid single word", func(t *testing.T) {
		code := bytes.Repeat([]byte{0xaa}, 32)
		hash, err := HashBytecode(code)
		require.NoError(t, err)

		assert.Equal(t, byte(1), hash[0], "version byte")
		assert.Equal(t, byte(0), hash[1])
		assert.Equal(t, uint16(1), binary.BigEndian.Uint16(hash[2:4]), "word count")
	})

	t.Run("word count encodes length", func(t *testing.T) {
		code := bytes.Repeat([]byte{0x01}, 32*5)
		hash, err := HashBytecode(code)
		require.NoError(t, err)
		assert.Equal(t, uint16(5), binary.BigEndian.Uint16(hash[2:4]))
	})

	t.Run("distinct bytecodes hash differently", func(t *testing.T) {
		a, err := HashBytecode(bytes.Repeat([]byte{0x01}, 32))
		require.NoError(t, err)
		b, err := HashBytecode(bytes.Repeat([]byte{0x02}, 32))
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("rejects empty bytecode", func(t *testing.T) {
		_, err := HashBytecode(nil)
		assert.Error(t, err)
	})

	t.Run("rejects unaligned bytecode", func(t *testing.T) {
		_, err := HashBytecode(bytes.Repeat([]byte{0x01}, 33))
		assert.Error(t, err)
	})

	t.Run("rejects even word count", func(t *testing.T) {
		_, err := HashBytecode(bytes.Repeat([]byte{0x01}, 64))
		assert.Error(t, err)
	})
}

func testTransaction() *Transaction {
	return &Transaction{
		Nonce:         big.NewInt(7),
		GasTipCap:     big.NewInt(100_000_000),
		GasFeeCap:     big.NewInt(250_000_000),
		Gas:           big.NewInt(4_100_000),
		To:            ContractDeployerAddress,
		Value:         big.NewInt(0),
		Data:          []byte{0xde, 0xad, 0xbe, 0xef},
		ChainID:       big.NewInt(280),
		From:          common.HexToAddress("0x36615cf349d7f6344891b1e7ca7c72883f5dc049"),
		FeeToken:      NativeToken,
		GasPerPubdata: big.NewInt(DefaultGasPerPubdata),
		FactoryDeps:   [][]byte{bytes.Repeat([]byte{0x11}, 32)},
	}
}

func TestRawRoundTrip(t *testing.T) {
	tx := testTransaction()
	sig := bytes.Repeat([]byte{0x42}, 65)

	raw, err := tx.RawWithSignature(sig)
	require.NoError(t, err)
	require.Equal(t, byte(TxType), raw[0])

	decoded, gotSig, err := DecodeRaw(raw)
	require.NoError(t, err)

	assert.Equal(t, sig, gotSig)
	assert.Equal(t, 0, tx.Nonce.Cmp(decoded.Nonce))
	assert.Equal(t, 0, tx.Gas.Cmp(decoded.Gas))
	assert.Equal(t, tx.To, decoded.To)
	assert.Equal(t, tx.From, decoded.From)
	assert.Equal(t, tx.FeeToken, decoded.FeeToken)
	assert.Equal(t, tx.Data, decoded.Data)
	assert.Equal(t, tx.FactoryDeps, decoded.FactoryDeps)
	assert.Equal(t, 0, tx.ChainID.Cmp(decoded.ChainID))
}

func TestRawRejectsWrongType(t *testing.T) {
	_, _, err := DecodeRaw([]byte{0x02, 0x01})
	assert.Error(t, err)
}

func TestSignTxRecoversSigner(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	tx := testTransaction()
	tx.From = crypto.PubkeyToAddress(key.PublicKey)

	raw, err := SignTx(tx, key)
	require.NoError(t, err)

	decoded, sig, err := DecodeRaw(raw)
	require.NoError(t, err)

	pub, err := RecoverSigner(decoded, sig)
	require.NoError(t, err)
	recovered := common.BytesToAddress(crypto.Keccak256(pub[1:])[12:])
	assert.Equal(t, tx.From, recovered)
}

func TestTypedDataRequiresChainID(t *testing.T) {
	tx := testTransaction()
	tx.ChainID = nil
	_, err := tx.Digest()
	assert.Error(t, err)
}

func TestTypedDataWideChainID(t *testing.T) {
	// EIP-155 chain IDs are unbounded; the signing domain must carry
	// the full value, not an int64 truncation.
	chainID, ok := new(big.Int).SetString("18446744073709551617", 10)
	require.True(t, ok)

	tx := testTransaction()
	tx.ChainID = chainID

	typedData, err := tx.TypedData()
	require.NoError(t, err)
	require.NotNil(t, typedData.Domain.ChainId)
	assert.Zero(t, chainID.Cmp((*big.Int)(typedData.Domain.ChainId)))
}

func TestEncodeCreate(t *testing.T) {
	hash, err := HashBytecode(bytes.Repeat([]byte{0x22}, 32))
	require.NoError(t, err)

	data, err := EncodeCreate(hash, []byte{0x01, 0x02})
	require.NoError(t, err)

	// 4-byte selector plus three ABI slots and the padded input tail.
	require.Greater(t, len(data), 4+32*3)
	sig := contractDeployerABI.Methods["create"].ID
	assert.Equal(t, sig, data[:4])
	assert.Equal(t, hash[:], data[4+32:4+64], "bytecode hash occupies the second slot")
}

func TestCallMsgToRPC(t *testing.T) {
	to := ContractDeployerAddress
	msg := CallMsg{
		From: common.HexToAddress("0x36615cf349d7f6344891b1e7ca7c72883f5dc049"),
		To:   &to,
		Data: []byte{0x01},
		Meta: &Eip712Meta{},
	}

	arg := msg.ToRPC()
	assert.Contains(t, arg, "from")
	assert.Contains(t, arg, "to")
	assert.Contains(t, arg, "data")
	assert.Contains(t, arg, "eip712Meta")
	assert.NotContains(t, arg, "value")
	assert.NotContains(t, arg, "gas")
}
