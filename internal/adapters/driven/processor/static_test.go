package processor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticPrefix(t *testing.T) {
	p := NewStatic(StaticConfig{Language: "ko"})

	got, err := p.Process(context.Background(), "Hello", nil)
	require.NoError(t, err)
	assert.Equal(t, "[ko] Hello", got)
}

func TestStaticMapping(t *testing.T) {
	p := NewStatic(StaticConfig{
		Prefix:  "[T] ",
		Mapping: map[string]string{"Hello": "안녕"},
	})

	got, err := p.Process(context.Background(), "Hello", nil)
	require.NoError(t, err)
	assert.Equal(t, "안녕", got)

	got, err = p.Process(context.Background(), "unmapped", nil)
	require.NoError(t, err)
	assert.Equal(t, "[T] unmapped", got)
}

func TestStaticCapabilities(t *testing.T) {
	assert.True(t, NewStatic(StaticConfig{Language: "ko"}).Capabilities().TargetLanguage)
	assert.False(t, NewStatic(StaticConfig{}).Capabilities().TargetLanguage)
	assert.True(t, NewStatic(StaticConfig{}).Capabilities().References)
}

func TestStaticHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStatic(StaticConfig{}).Process(ctx, "x", nil)
	assert.Error(t, err)
}
