package interactive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/vodkadao/daoctl/internal/domain/config"
	"github.com/vodkadao/daoctl/internal/domain/models"
	"github.com/vodkadao/daoctl/internal/usecase"
)

// ErrNonInteractive is returned when a prompt would be needed in non-interactive mode
var ErrNonInteractive = errors.New("interactive selection not available in non-interactive mode")

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

func selectTemplates(help string) *promptui.SelectTemplates {
	return &promptui.SelectTemplates{
		Label:    "{{ . | bold }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.Faint).Sprint(help),
	}
}

// SelectProposal asks the user to pick one of proposals
func (s *SelectorAdapter) SelectProposal(ctx context.Context, proposals []*models.ProposalView, prompt string) (*models.ProposalView, error) {
	if s.config.NonInteractive {
		return nil, ErrNonInteractive
	}
	if len(proposals) == 0 {
		return nil, fmt.Errorf("no proposals to choose from")
	}
	if len(proposals) == 1 {
		return proposals[0], nil
	}

	picker := promptui.Select{
		Label:             prompt,
		Items:             FormatProposalOptions(proposals),
		Templates:         selectTemplates("type an id, item or state to filter"),
		Size:              8,
		StartInSearchMode: true,
		Searcher:          newProposalSearcher(searchKeys(proposals)),
	}

	index, _, err := picker.Run()
	if err != nil {
		return nil, fmt.Errorf("no proposal selected: %w", err)
	}
	return proposals[index], nil
}

// SelectVoteChoice asks the user for Yay or Nay
func (s *SelectorAdapter) SelectVoteChoice(ctx context.Context, proposal *models.ProposalView) (models.VoteChoice, error) {
	if s.config.NonInteractive {
		return 0, ErrNonInteractive
	}

	choices := []models.VoteChoice{models.VoteYay, models.VoteNay}
	ballot := promptui.Select{
		Label:     fmt.Sprintf("Vote on proposal #%d (item %d)", proposal.ID, proposal.ItemID),
		Items:     []string{"Yay, buy the item", "Nay, keep the funds"},
		Templates: selectTemplates("a vote cannot be changed once cast"),
	}

	index, _, err := ballot.Run()
	if err != nil {
		return 0, fmt.Errorf("no vote selected: %w", err)
	}
	return choices[index], nil
}

// FormatProposalOptions creates display strings for proposal selection
func FormatProposalOptions(proposals []*models.ProposalView) []string {
	options := make([]string, len(proposals))
	for i, p := range proposals {
		id := color.New(color.FgWhite, color.Bold).Sprintf("#%d", p.ID)
		item := color.New(color.FgBlue).Sprintf("item %d", p.ItemID)
		options[i] = fmt.Sprintf("%s %s [%s] %d yay / %d nay", id, item, p.State, p.YayVotes, p.NayVotes)
	}
	return options
}

// searchKeys returns the uncolored text each proposal option is matched against
func searchKeys(proposals []*models.ProposalView) []string {
	keys := make([]string, len(proposals))
	for i, p := range proposals {
		keys[i] = strings.ToLower(fmt.Sprintf("#%d item %d %s", p.ID, p.ItemID, p.State))
	}
	return keys
}

// newProposalSearcher ranks keys with fuzzy.Find once per query; promptui then
// asks about one index at a time
func newProposalSearcher(keys []string) func(input string, index int) bool {
	var (
		lastInput string
		matched   map[int]bool
	)
	return func(input string, index int) bool {
		input = strings.ToLower(strings.TrimSpace(input))
		if input == "" {
			return true
		}
		if matched == nil || input != lastInput {
			lastInput = input
			matched = make(map[int]bool)
			for _, m := range fuzzy.Find(input, keys) {
				matched[m.Index] = true
			}
		}
		return matched[index]
	}
}

var _ usecase.InteractiveSelector = (*SelectorAdapter)(nil)
