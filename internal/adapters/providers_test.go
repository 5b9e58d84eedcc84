package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vodkadao/daoctl/internal/adapters/membership"
	"github.com/vodkadao/daoctl/internal/adapters/treasury"
	"github.com/vodkadao/daoctl/internal/domain/config"
)

func TestOfflineProviders(t *testing.T) {
	cfg := &config.RuntimeConfig{}

	assert.IsType(t, &membership.StaticLedger{}, ProvideMembershipOracle(cfg, nil))
	assert.IsType(t, &treasury.FixedPrice{}, ProvidePriceOracle(cfg, nil))
	assert.Nil(t, ProvideChainBalance(cfg, nil))
}
