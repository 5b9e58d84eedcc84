package progress

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vodkadao/daoctl/internal/domain/config"
	"github.com/vodkadao/daoctl/internal/usecase"
)

func TestSpinnerProgressReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewSpinnerProgressReporter(&buf)
	ctx := context.Background()

	r.OnProgress(ctx, usecase.ProgressEvent{Stage: "purchasing", Message: "Buying item 7", Spinner: true})
	assert.Equal(t, "purchasing", r.Stage())
	assert.Equal(t, " Buying item 7", r.spinner.Suffix)

	r.Info("treasury debited")

	r.OnProgress(ctx, usecase.ProgressEvent{Stage: "done"})
	assert.False(t, r.spinner.Active())
	assert.Contains(t, buf.String(), "treasury debited")
}

func TestProvideSink(t *testing.T) {
	assert.IsType(t, usecase.NopProgress{}, ProvideSink(&config.RuntimeConfig{JSON: true}))
	assert.IsType(t, usecase.NopProgress{}, ProvideSink(&config.RuntimeConfig{NonInteractive: true}))
	assert.IsType(t, &SpinnerProgressReporter{}, ProvideSink(&config.RuntimeConfig{}))
}
