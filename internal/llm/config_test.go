package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetModel(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
		tier   ModelTier
		want   string
	}{
		{
			name:   "configured tier",
			config: DefaultConfig(),
			tier:   TierAdvanced,
			want:   "gemini-2.5-pro",
		},
		{
			name: "unknown tier falls back to standard",
			config: &Config{Models: map[ModelTier]string{
				TierStandard: "gemini-2.5-flash",
			}},
			tier: TierAdvanced,
			want: "gemini-2.5-flash",
		},
		{
			name: "falls back to lite when standard is missing",
			config: &Config{Models: map[ModelTier]string{
				TierLite: "gemini-2.5-flash-lite",
			}},
			tier: TierAdvanced,
			want: "gemini-2.5-flash-lite",
		},
		{
			name:   "empty config yields empty model",
			config: &Config{Models: map[ModelTier]string{}},
			tier:   TierStandard,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.config.GetModel(tt.tier))
		})
	}
}

func TestWithModel(t *testing.T) {
	base := DefaultConfig()
	custom := base.WithModel(TierStandard, "gemini-custom")

	assert.Equal(t, "gemini-custom", custom.GetModel(TierStandard))
	// The original config is not mutated.
	assert.Equal(t, "gemini-2.5-flash", base.GetModel(TierStandard))
	// Other tiers are carried over.
	assert.Equal(t, "gemini-2.5-pro", custom.GetModel(TierAdvanced))
}
