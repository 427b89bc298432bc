package render

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/trebuchet-org/zkdeploy/internal/domain/models"
	"github.com/trebuchet-org/zkdeploy/pkg/zktx"
)

// FeeRenderer renders fee estimates
type FeeRenderer struct {
	out     io.Writer
	json    bool
	printer *message.Printer
}

// NewFeeRenderer creates a new fee renderer
func NewFeeRenderer(out io.Writer, json bool) *FeeRenderer {
	return &FeeRenderer{
		out:     out,
		json:    json,
		printer: message.NewPrinter(language.English),
	}
}

// RenderFee prints the estimated deployment fee
func (r *FeeRenderer) RenderFee(artifact *models.Artifact, fee *big.Int, token common.Address) error {
	if r.json {
		return json.NewEncoder(r.out).Encode(map[string]any{
			"contract": artifact.FullyQualifiedName(),
			"fee":      fee.String(),
			"feeToken": token.Hex(),
		})
	}

	fmt.Fprintf(r.out, "Estimated deployment fee for %s:\n", artifact.FullyQualifiedName())
	fmt.Fprintf(r.out, "  %s %s\n", r.formatFee(fee), tokenLabel(token))
	if token != zktx.NativeToken {
		fmt.Fprintf(r.out, "  Fee token: %s\n", token.Hex())
	}
	return nil
}

// formatFee groups digits for readability. Amounts beyond uint64
// range print ungrouped.
func (r *FeeRenderer) formatFee(fee *big.Int) string {
	if fee.IsUint64() {
		return r.printer.Sprintf("%d", fee.Uint64())
	}
	return fee.String()
}

// tokenLabel names the unit the fee is denominated in.
func tokenLabel(token common.Address) string {
	if token == zktx.NativeToken {
		return "wei"
	}
	return "token units"
}
