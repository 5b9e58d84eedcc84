package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vodkadao/daoctl/internal/usecase"
)

// TreasuryRenderer renders the treasury overview
type TreasuryRenderer struct {
	*ProposalsRenderer
}

// NewTreasuryRenderer creates a new treasury renderer
func NewTreasuryRenderer(out io.Writer, color bool) *TreasuryRenderer {
	return &TreasuryRenderer{ProposalsRenderer: &ProposalsRenderer{out: out, color: color}}
}

// Render renders the overview
func (r *TreasuryRenderer) Render(o *usecase.TreasuryOverview) error {
	fmt.Fprintln(r.out, r.paint(sectionHeaderStyle, "Treasury"))
	r.field("Balance", FormatWei(o.Balance))
	if o.ChainBalance != nil {
		r.field("On-chain", FormatWei(o.ChainBalance))
	}
	if o.MarketPrice != nil {
		r.field("Price", FormatWei(o.MarketPrice))
	}
	r.field("Proposals", fmt.Sprintf("%d (%d open)", o.Proposals, o.OpenProposals))
	if o.Holder != (common.Address{}) {
		r.field("NFTs", fmt.Sprintf("%s holds %s", FormatAddress(o.Holder), strconv.FormatUint(o.HolderNFTs, 10)))
	}
	return nil
}
