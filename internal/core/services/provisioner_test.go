package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocean48/oceanbot/internal/core/domain"
)

func TestNewIndexProvisioner_Defaults(t *testing.T) {
	p := NewIndexProvisioner(newFakeIndex(), domain.IndexSpec{Name: "oceanbot", Dimensions: 1536}, 0, 0)

	assert.Equal(t, domain.MetricCosine, p.Spec().Metric)
	assert.Equal(t, domain.DefaultReadyTimeout, p.readyTimeout)
	assert.Equal(t, domain.DefaultPollInterval, p.pollInterval)
}

func TestEnsureIndex_CreatesMissingIndex(t *testing.T) {
	idx := newFakeIndex()
	idx.exists = false

	p := NewIndexProvisioner(idx, domain.IndexSpec{Name: "oceanbot", Dimensions: 1536}, time.Second, time.Millisecond)
	require.NoError(t, p.EnsureIndex(context.Background()))

	require.Len(t, idx.created, 1)
	assert.Equal(t, "oceanbot", idx.created[0].Name)
	assert.Equal(t, 1536, idx.created[0].Dimensions)
	assert.Equal(t, domain.MetricCosine, idx.created[0].Metric)
}

func TestEnsureIndex_ExistingIndexNotRecreated(t *testing.T) {
	idx := newFakeIndex()

	p := NewIndexProvisioner(idx, domain.IndexSpec{Name: "oceanbot", Dimensions: 2}, time.Second, time.Millisecond)
	require.NoError(t, p.EnsureIndex(context.Background()))
	require.NoError(t, p.EnsureIndex(context.Background()))

	assert.Empty(t, idx.created)
	assert.Equal(t, 2, idx.describes)
}

func TestEnsureIndex_PollsUntilReady(t *testing.T) {
	idx := newFakeIndex()
	idx.exists = false
	idx.readyAfter = 3

	p := NewIndexProvisioner(idx, domain.IndexSpec{Name: "oceanbot", Dimensions: 2}, time.Second, time.Millisecond)
	require.NoError(t, p.EnsureIndex(context.Background()))

	assert.Equal(t, 4, idx.describes)
}

func TestEnsureIndex_Timeout(t *testing.T) {
	idx := newFakeIndex()
	idx.readyAfter = 1 << 30

	p := NewIndexProvisioner(idx, domain.IndexSpec{Name: "oceanbot", Dimensions: 2}, 5*time.Millisecond, time.Millisecond)
	err := p.EnsureIndex(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIndexProvisioning)
	assert.Contains(t, err.Error(), "not ready")
}

func TestEnsureIndex_ContextCancelled(t *testing.T) {
	idx := newFakeIndex()
	idx.readyAfter = 1 << 30

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewIndexProvisioner(idx, domain.IndexSpec{Name: "oceanbot", Dimensions: 2}, time.Minute, time.Second)
	err := p.EnsureIndex(ctx)

	assert.ErrorIs(t, err, domain.ErrIndexProvisioning)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEnsureIndex_Failures(t *testing.T) {
	t.Run("no index configured", func(t *testing.T) {
		p := NewIndexProvisioner(nil, domain.IndexSpec{Name: "oceanbot"}, 0, 0)
		err := p.EnsureIndex(context.Background())
		assert.ErrorIs(t, err, domain.ErrIndexProvisioning)
		assert.ErrorIs(t, err, domain.ErrVectorIndexUnavailable)
	})

	t.Run("exists check fails", func(t *testing.T) {
		idx := newFakeIndex()
		idx.existsErr = errFake
		err := NewIndexProvisioner(idx, domain.IndexSpec{Name: "oceanbot"}, 0, 0).EnsureIndex(context.Background())
		assert.ErrorIs(t, err, domain.ErrIndexProvisioning)
		assert.ErrorIs(t, err, errFake)
	})

	t.Run("create fails", func(t *testing.T) {
		idx := newFakeIndex()
		idx.exists = false
		idx.createErr = errFake
		err := NewIndexProvisioner(idx, domain.IndexSpec{Name: "oceanbot"}, 0, 0).EnsureIndex(context.Background())
		assert.ErrorIs(t, err, domain.ErrIndexProvisioning)
		assert.ErrorIs(t, err, errFake)
	})
}
