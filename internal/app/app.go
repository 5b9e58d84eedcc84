package app

import (
	"log/slog"

	"github.com/vodkadao/daoctl/internal/adapters/metrics"
	"github.com/vodkadao/daoctl/internal/domain/config"
	"github.com/vodkadao/daoctl/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared dependencies
	Selector usecase.InteractiveSelector
	Metrics  *metrics.Governance
	Clock    usecase.Clock

	// Governance use cases
	CreateProposal  *usecase.CreateProposal
	CastVote        *usecase.CastVote
	ExecuteProposal *usecase.ExecuteProposal
	ShowProposal    *usecase.ShowProposal
	CountProposals  *usecase.CountProposals
	ListProposals   *usecase.ListProposals

	// Treasury use cases
	ShowTreasury *usecase.ShowTreasury
	FundTreasury *usecase.FundTreasury
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	selector usecase.InteractiveSelector,
	governanceMetrics *metrics.Governance,
	clock usecase.Clock,
	createProposal *usecase.CreateProposal,
	castVote *usecase.CastVote,
	executeProposal *usecase.ExecuteProposal,
	showProposal *usecase.ShowProposal,
	countProposals *usecase.CountProposals,
	listProposals *usecase.ListProposals,
	showTreasury *usecase.ShowTreasury,
	fundTreasury *usecase.FundTreasury,
) *App {
	return &App{
		Config:          cfg,
		Log:             log,
		Selector:        selector,
		Metrics:         governanceMetrics,
		Clock:           clock,
		CreateProposal:  createProposal,
		CastVote:        castVote,
		ExecuteProposal: executeProposal,
		ShowProposal:    showProposal,
		CountProposals:  countProposals,
		ListProposals:   listProposals,
		ShowTreasury:    showTreasury,
		FundTreasury:    fundTreasury,
	}
}
