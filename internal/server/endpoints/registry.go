package endpoints

import (
	"github.com/cosmicfriends/promptkit/internal/api"
	"github.com/cosmicfriends/promptkit/internal/home"
)

// Command groups under "promptkit api".
const (
	groupCharacters = "characters"
	groupPrompts    = "prompts"
)

// Config holds dependencies needed by some endpoints.
type Config struct {
	// Home locates the home directory on the CLI side (export --save).
	Home func() (*home.Dir, error)
}

// All returns all endpoint instances.
func All(cfg Config) []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&ReadyEndpoint{},
		&StatusEndpoint{},

		// Character endpoints
		&ListCharactersEndpoint{},
		&GetCharacterEndpoint{},
		&NegativePromptEndpoint{},

		// Prompt endpoints
		&StructuredPromptEndpoint{},
		&FlatPromptEndpoint{},
		&SpriteSheetEndpoint{},
		&ContentPromptEndpoint{},
		&BatchPromptEndpoint{},
		&ExportPromptEndpoint{Home: cfg.Home},

		// Metrics
		&MetricsEndpoint{},
	}
}
