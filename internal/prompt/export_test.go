package prompt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePrompt(aspect string) GenerationPrompt {
	return GenerationPrompt{
		CharacterID:    "cf-007",
		SceneID:        "sprite_front",
		OutfitID:       "cloud hoodie",
		Prompt:         "ultra detailed photograph, <glow> & haze",
		NegativePrompt: "blurry, text",
		Settings:       Settings{AspectRatio: aspect, Quality: "ultra detailed", Resolution: "4k"},
	}
}

func TestExport(t *testing.T) {
	tests := []struct {
		name     string
		platform Platform
		aspect   string
		want     string
	}{
		{
			name:     "midjourney",
			platform: Midjourney,
			aspect:   "9:16",
			want:     "ultra detailed photograph, <glow> & haze --ar 9:16 --q 2 --s 750",
		},
		{
			name:     "dalle",
			platform: DallE,
			aspect:   "9:16",
			want:     "ultra detailed photograph, <glow> & haze",
		},
		{
			name:     "stable diffusion portrait",
			platform: StableDiffusion,
			aspect:   "9:16",
			want:     `{"prompt":"ultra detailed photograph, <glow> & haze","negative_prompt":"blurry, text","width":768,"height":1344,"steps":30,"cfg_scale":7.5}`,
		},
		{
			name:     "stable diffusion other ratio",
			platform: StableDiffusion,
			aspect:   "16:9",
			want:     `{"prompt":"ultra detailed photograph, <glow> & haze","negative_prompt":"blurry, text","width":1024,"height":1024,"steps":30,"cfg_scale":7.5}`,
		},
		{
			name:     "nano banana",
			platform: NanoBanana,
			aspect:   "1:1",
			want:     `{"prompt":"ultra detailed photograph, <glow> & haze","negative_prompt":"blurry, text","aspect_ratio":"1:1","quality":"ultra detailed"}`,
		},
		{
			name:     "unknown platform",
			platform: "firefly",
			aspect:   "9:16",
			want:     "ultra detailed photograph, <glow> & haze",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Export(samplePrompt(tt.aspect), tt.platform)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExport_StableDiffusionScenario(t *testing.T) {
	got, err := Export(samplePrompt("9:16"), StableDiffusion)
	require.NoError(t, err)
	assert.Contains(t, got, `"width":768,"height":1344,"steps":30,"cfg_scale":7.5`)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &decoded))
	assert.Equal(t, float64(30), decoded["steps"])
	assert.Equal(t, 7.5, decoded["cfg_scale"])
}

func TestExport_FromBatch(t *testing.T) {
	batch, err := Batch(testCharacter(), 1, VarietyAll)
	require.NoError(t, err)

	got, err := Export(batch[0], Midjourney)
	require.NoError(t, err)
	assert.Equal(t, batch[0].Prompt+" --ar 9:16 --q 2 --s 750", got)
}

func TestExportAll(t *testing.T) {
	p := samplePrompt("9:16")
	all, err := ExportAll(p)
	require.NoError(t, err)

	require.Len(t, all, len(Platforms()))
	for _, platform := range Platforms() {
		want, err := Export(p, platform)
		require.NoError(t, err)
		assert.Equal(t, want, all[platform])
	}
}
