package resolve

// Provenance records where a resolved value came from. It is attached
// to every pipeline response and never persisted: a value served from
// cache is re-tagged FromCache regardless of how it was originally
// produced.
type Provenance string

const (
	// FromCache: served from the typed cache.
	FromCache Provenance = "cache"

	// FromAPI: freshly fetched news listing.
	FromAPI Provenance = "api"

	// Generated: a real summary produced from acquired content.
	Generated Provenance = "generated"

	// Computed: a freshly computed sentiment result.
	Computed Provenance = "computed"

	// PlaceholderResult: the degraded canned summary, produced when
	// every acquisition stage failed.
	PlaceholderResult Provenance = "placeholder"
)
