package interactive

import (
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vodkadao/daoctl/internal/domain/config"
	"github.com/vodkadao/daoctl/internal/domain/models"
)

func TestProposalSearcher(t *testing.T) {
	keys := searchKeys([]*models.ProposalView{
		{ID: 1, ItemID: 42, State: models.ProposalStateOpen},
		{ID: 2, ItemID: 7, State: models.ProposalStateClosed},
		{ID: 3, ItemID: 9, State: models.ProposalStateExecuted},
	})
	assert.Equal(t, "#2 item 7 closed", keys[1])
	search := newProposalSearcher(keys)

	assert.True(t, search("", 0))
	assert.True(t, search("CLOSED", 1))
	assert.False(t, search("closed", 0))
	assert.True(t, search("itm9", 2))
}

func TestFormatProposalOptions(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	opts := FormatProposalOptions([]*models.ProposalView{
		{ID: 1, ItemID: 42, State: models.ProposalStateOpen, YayVotes: 2, NayVotes: 1},
	})
	require.Len(t, opts, 1)
	assert.Equal(t, "#1 item 42 [open] 2 yay / 1 nay", opts[0])
}

func TestSelector_NonInteractive(t *testing.T) {
	s := NewSelectorAdapter(&config.RuntimeConfig{NonInteractive: true})
	ctx := context.Background()

	_, err := s.SelectProposal(ctx, []*models.ProposalView{{ID: 1}, {ID: 2}}, "pick")
	assert.ErrorIs(t, err, ErrNonInteractive)

	_, err = s.SelectVoteChoice(ctx, &models.ProposalView{ID: 1})
	assert.ErrorIs(t, err, ErrNonInteractive)
}

func TestSelector_SingleProposalNeedsNoPrompt(t *testing.T) {
	s := NewSelectorAdapter(&config.RuntimeConfig{})
	only := &models.ProposalView{ID: 4}
	got, err := s.SelectProposal(context.Background(), []*models.ProposalView{only}, "pick")
	require.NoError(t, err)
	assert.Same(t, only, got)
}
