package anthropic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateCost(t *testing.T) {
	t.Parallel()

	usage := TokenUsage{InputTokens: 1_000_000, OutputTokens: 500_000}
	cost := usage.EstimateCost("claude-haiku-4-5-20251001")
	// 1M input at $0.80 + 0.5M output at $4.00
	assert.InDelta(t, 0.80+2.00, cost, 0.0001)
}

func TestEstimateCost_UnknownModel(t *testing.T) {
	t.Parallel()

	usage := TokenUsage{InputTokens: 1000, OutputTokens: 1000}
	assert.Zero(t, usage.EstimateCost("some-unknown-model"))
}

func TestEstimateCost_CacheTokens(t *testing.T) {
	t.Parallel()

	usage := TokenUsage{CacheCreationInputTokens: 1_000_000, CacheReadInputTokens: 1_000_000}
	cost := usage.EstimateCost("claude-haiku-4-5-20251001")
	// Cache writes at 1.25x input rate, cache reads at 0.1x.
	assert.InDelta(t, 0.80*1.25+0.80*0.1, cost, 0.0001)
}

func TestBuildCachedSystemBlocks(t *testing.T) {
	t.Parallel()

	blocks := BuildCachedSystemBlocks("system text")
	assert.Len(t, blocks, 1)
	assert.Equal(t, "system text", blocks[0].Text)
	assert.NotNil(t, blocks[0].CacheControl)
	assert.Equal(t, "5m", blocks[0].CacheControl.TTL)
}

func TestToSDKMessages_Roles(t *testing.T) {
	t.Parallel()

	msgs := toSDKMessages([]Message{
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hi"},
	})
	assert.Len(t, msgs, 2)
	assert.Equal(t, "user", string(msgs[0].Role))
	assert.Equal(t, "assistant", string(msgs[1].Role))
}
