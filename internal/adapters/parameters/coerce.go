// Package parameters converts textual constructor arguments into the
// Go values the ABI encoder expects, validated against the artifact's
// interface description before any transaction is built.
package parameters

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// CoerceArgs converts one textual value per constructor input. The
// count must match exactly; there are no optional constructor
// parameters.
func CoerceArgs(inputs abi.Arguments, raw []string) ([]any, error) {
	if len(raw) != len(inputs) {
		return nil, fmt.Errorf("constructor takes %d argument(s), got %d", len(inputs), len(raw))
	}

	args := make([]any, len(raw))
	for i, input := range inputs {
		value, err := coerce(input.Type, raw[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s %s): %w", i, input.Name, input.Type.String(), err)
		}
		args[i] = value
	}
	return args, nil
}

func coerce(t abi.Type, raw string) (any, error) {
	switch t.T {
	case abi.AddressTy:
		if !common.IsHexAddress(raw) {
			return nil, fmt.Errorf("%q is not a hex address", raw)
		}
		return common.HexToAddress(raw), nil

	case abi.BoolTy:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not a bool", raw)
		}
		return v, nil

	case abi.StringTy:
		return raw, nil

	case abi.BytesTy:
		data, err := hexutil.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not hex bytes: %w", raw, err)
		}
		return data, nil

	case abi.FixedBytesTy:
		data, err := hexutil.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not hex bytes: %w", raw, err)
		}
		if len(data) != t.Size {
			return nil, fmt.Errorf("expected %d bytes, got %d", t.Size, len(data))
		}
		arr := reflect.New(t.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(data))
		return arr.Interface(), nil

	case abi.UintTy, abi.IntTy:
		return coerceInteger(t, raw)

	case abi.SliceTy:
		return coerceSlice(t, raw)

	default:
		return nil, fmt.Errorf("unsupported constructor argument type %s", t.String())
	}
}

func coerceInteger(t abi.Type, raw string) (any, error) {
	n, ok := new(big.Int).SetString(raw, 0)
	if !ok {
		return nil, fmt.Errorf("%q is not an integer", raw)
	}
	if t.T == abi.UintTy {
		if n.Sign() < 0 {
			return nil, fmt.Errorf("%q is negative for an unsigned type", raw)
		}
		if n.BitLen() > t.Size {
			return nil, fmt.Errorf("%q overflows %s", raw, t.String())
		}
	} else {
		// A signed intN spans [-2^(N-1), 2^(N-1)-1]; a plain bit-length
		// check would admit values that wrap on conversion.
		max := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
		min := new(big.Int).Neg(max)
		max.Sub(max, big.NewInt(1))
		if n.Cmp(min) < 0 || n.Cmp(max) > 0 {
			return nil, fmt.Errorf("%q overflows %s", raw, t.String())
		}
	}

	// The encoder wants the exact machine type for widths up to 64
	// bits and *big.Int beyond.
	if t.T == abi.UintTy {
		switch t.Size {
		case 8:
			return uint8(n.Uint64()), nil
		case 16:
			return uint16(n.Uint64()), nil
		case 32:
			return uint32(n.Uint64()), nil
		case 64:
			return n.Uint64(), nil
		default:
			return n, nil
		}
	}
	switch t.Size {
	case 8:
		return int8(n.Int64()), nil
	case 16:
		return int16(n.Int64()), nil
	case 32:
		return int32(n.Int64()), nil
	case 64:
		return n.Int64(), nil
	default:
		return n, nil
	}
}

func coerceSlice(t abi.Type, raw string) (any, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "[")
	trimmed = strings.TrimSuffix(trimmed, "]")

	slice := reflect.MakeSlice(t.GetType(), 0, 0)
	if strings.TrimSpace(trimmed) == "" {
		return slice.Interface(), nil
	}

	for _, part := range strings.Split(trimmed, ",") {
		elem, err := coerce(*t.Elem, strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		slice = reflect.Append(slice, reflect.ValueOf(elem))
	}
	return slice.Interface(), nil
}
