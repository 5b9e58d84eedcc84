//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/vodkadao/daoctl/internal/adapters"
	"github.com/vodkadao/daoctl/internal/config"
	"github.com/vodkadao/daoctl/internal/logging"
	"github.com/vodkadao/daoctl/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, func(), error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewNotifier,
		usecase.NewCreateProposal,
		usecase.NewCastVote,
		usecase.NewExecuteProposal,
		usecase.NewShowProposal,
		usecase.NewCountProposals,
		usecase.NewListProposals,
		usecase.NewShowTreasury,
		usecase.NewFundTreasury,

		// App
		NewApp,
	)
	return nil, nil, nil
}
