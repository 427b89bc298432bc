package zktx

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

const bytecodeWordSize = 32

// HashBytecode computes the versioned hash the rollup VM uses to
// reference a contract's bytecode. Layout: byte 0 is the version (1),
// byte 1 is zero, bytes 2-3 hold the bytecode length in 32-byte words
// big-endian, and the remainder is the tail of sha256(bytecode).
func HashBytecode(bytecode []byte) ([32]byte, error) {
	var hash [32]byte

	if len(bytecode) == 0 {
		return hash, fmt.Errorf("bytecode is empty")
	}
	if len(bytecode)%bytecodeWordSize != 0 {
		return hash, fmt.Errorf("bytecode length %d is not a multiple of %d bytes", len(bytecode), bytecodeWordSize)
	}
	words := len(bytecode) / bytecodeWordSize
	if words%2 == 0 {
		return hash, fmt.Errorf("bytecode length must be an odd number of words, got %d", words)
	}
	if words > 0xffff {
		return hash, fmt.Errorf("bytecode of %d words exceeds the %d word limit", words, 0xffff)
	}

	hash = sha256.Sum256(bytecode)
	hash[0] = 1
	hash[1] = 0
	binary.BigEndian.PutUint16(hash[2:4], uint16(words))
	return hash, nil
}
