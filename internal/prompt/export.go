package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Platform names a downstream image generator.
type Platform string

const (
	Midjourney      Platform = "midjourney"
	DallE           Platform = "dalle"
	StableDiffusion Platform = "stable_diffusion"
	NanoBanana      Platform = "nano_banana"
)

// Platforms returns every platform Export formats specially.
func Platforms() []Platform {
	return []Platform{Midjourney, DallE, StableDiffusion, NanoBanana}
}

type stableDiffusionRequest struct {
	Prompt         string  `json:"prompt"`
	NegativePrompt string  `json:"negative_prompt"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Steps          int     `json:"steps"`
	CfgScale       float64 `json:"cfg_scale"`
}

type nanoBananaRequest struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt"`
	AspectRatio    string `json:"aspect_ratio"`
	Quality        string `json:"quality"`
}

// Export formats a prompt for a platform. Unknown platforms get the flat
// prompt text unchanged.
func Export(p GenerationPrompt, platform Platform) (string, error) {
	switch platform {
	case Midjourney:
		return fmt.Sprintf("%s --ar %s --q 2 --s 750", p.Prompt, p.Settings.AspectRatio), nil

	case StableDiffusion:
		width, height := 1024, 1024
		if p.Settings.AspectRatio == "9:16" {
			width, height = 768, 1344
		}
		return marshalCompact(stableDiffusionRequest{
			Prompt:         p.Prompt,
			NegativePrompt: p.NegativePrompt,
			Width:          width,
			Height:         height,
			Steps:          30,
			CfgScale:       7.5,
		})

	case NanoBanana:
		return marshalCompact(nanoBananaRequest{
			Prompt:         p.Prompt,
			NegativePrompt: p.NegativePrompt,
			AspectRatio:    p.Settings.AspectRatio,
			Quality:        p.Settings.Quality,
		})

	default:
		return p.Prompt, nil
	}
}

// ExportAll formats a prompt for every known platform.
func ExportAll(p GenerationPrompt) (map[Platform]string, error) {
	out := make(map[Platform]string, len(Platforms()))
	for _, platform := range Platforms() {
		s, err := Export(p, platform)
		if err != nil {
			return nil, fmt.Errorf("failed to export for %s: %w", platform, err)
		}
		out[platform] = s
	}
	return out, nil
}

// marshalCompact encodes v as single-line JSON without HTML escaping.
func marshalCompact(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("failed to encode export: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
