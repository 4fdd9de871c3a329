package location

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// NoLocation is the sentinel returned when no location could be
// extracted from a message. Callers must ask the user to clarify and
// must not attempt to geocode it.
const NoLocation = "NO_LOCATION"

var (
	zipPattern       = regexp.MustCompile(`\b\d{5}\b`)
	cityStatePattern = regexp.MustCompile(`\b[A-Z][a-zA-Z]+(?:[\s-][A-Z][a-zA-Z]+)*,\s*[A-Z]{2}\b`)
	capitalizedPlace = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+\b`)
	// Phrases that suggest the user means a place even when the pattern
	// match is absent or ambiguous.
	keywordPattern = regexp.MustCompile(`(?i)location|area|near|zipcode|zip code|in the|neighborhood`)
)

// matchLocation applies the location-shaped patterns in order of
// confidence: a 5-digit ZIP, then a "City, ST" token, then a bare
// capitalized multi-word token.
func matchLocation(message string) string {
	if m := zipPattern.FindString(message); m != "" {
		return m
	}
	if m := cityStatePattern.FindString(message); m != "" {
		return m
	}
	return capitalizedPlace.FindString(message)
}

const extractionSystemPrompt = `You are a helpful assistant that extracts location information from user queries. ` +
	`Respond with ONLY the location name or zip code, nothing else. If no location is mentioned, respond with "NO_LOCATION".`

func extractionUserPrompt(message string) string {
	return fmt.Sprintf(`Extract the location from this query: "%s"`, message)
}

// CompletionBackend is the serialized queue the resolver falls back to.
type CompletionBackend interface {
	Enqueue(ctx context.Context, system, user string) (string, error)
}

// Resolver extracts a location string from a free-text chat message.
type Resolver interface {
	Resolve(ctx context.Context, message string) (string, error)
}

var _ Resolver = (*ResolverImpl)(nil)

type ResolverImpl struct {
	logger      *slog.Logger
	completions CompletionBackend
}

func NewResolver(completions CompletionBackend, logger *slog.Logger) *ResolverImpl {
	return &ResolverImpl{
		logger:      logger,
		completions: completions,
	}
}

// Resolve applies the location pattern first and consults the model
// only when the pattern misses or location keywords make the match
// ambiguous. The model's trimmed answer, when non-empty, overrides the
// pattern match; the system prompt pins it to a bare location name or
// the NO_LOCATION marker so chatty replies cannot reach the geocoder.
func (r *ResolverImpl) Resolve(ctx context.Context, message string) (string, error) {
	ctx, span := otel.Tracer("LocationResolver").Start(ctx, "Resolve")
	defer span.End()

	match := matchLocation(message)
	if match != "" && !keywordPattern.MatchString(message) {
		span.SetAttributes(attribute.String("location.source", "pattern"))
		return match, nil
	}

	out, err := r.completions.Enqueue(ctx, extractionSystemPrompt, extractionUserPrompt(message))
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("extracting location: %w", err)
	}

	extracted := strings.TrimSpace(out)
	r.logger.DebugContext(ctx, "model location extraction",
		slog.String("extracted", extracted), slog.String("pattern_match", match))

	if extracted == "" {
		if match != "" {
			span.SetAttributes(attribute.String("location.source", "pattern"))
			return match, nil
		}
		span.SetAttributes(attribute.String("location.source", "none"))
		return NoLocation, nil
	}
	span.SetAttributes(attribute.String("location.source", "model"))
	return extracted, nil
}
