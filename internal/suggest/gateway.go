// Package suggest fetches reward ideas for a kid from a generative text
// service. Fetching is fail-soft: callers always get displayable text.
package suggest

import (
	"context"
	"fmt"
)

// User-facing fallback texts.
const (
	FallbackEmpty = "Could not generate rewards at this time."
	FallbackError = "Sorry, I couldn't come up with rewards right now. Please try again later."
)

// Gateway returns free-text reward suggestions for a kid. Implementations
// never return an error; failures become a fallback string.
type Gateway interface {
	FetchSuggestions(ctx context.Context, name string, points int) string
}

// FallbackGateway is used when no provider is configured.
type FallbackGateway struct{}

func (FallbackGateway) FetchSuggestions(context.Context, string, int) string {
	return FallbackError
}

// Prompt builds the request text sent to the provider.
func Prompt(name string, points int) string {
	return fmt.Sprintf(`I have a child named %s who has earned %d "Parent Points" for good behavior.
Please suggest 3 fun, simple, and age-appropriate rewards or activities they could redeem these points for.
Keep the tone enthusiastic, encouraging, and brief.
Format the output as a simple list.`, name, points)
}
