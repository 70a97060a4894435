package recipeclip

// RecipeMeta is the engine's output: a normalized recipe record computed
// from a single URL. It has no identity beyond the URL; callers may persist
// it but the engine treats it as a pure computation result.
type RecipeMeta struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
	Image string `json:"image,omitempty"`

	// Ingredients and Steps are always present, possibly empty.
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`

	// TotalMinutes is the combined prep+cook time when the source declared
	// one, zero otherwise.
	TotalMinutes int `json:"totalMinutes,omitempty"`

	// NeedsClientRender is set when the page plausibly requires a headless
	// browser render the engine cannot do itself. Callers may re-run the
	// extraction with a rendering Fetcher (see rod/).
	NeedsClientRender bool `json:"needsClientRender,omitempty"`
}

// PartialRecipe is what a single extractor returns. Partial results (title
// only, ingredients only) are acceptable; the orchestrator merges them.
type PartialRecipe struct {
	Title        string
	Image        string
	Ingredients  []string
	Steps        []string
	TotalMinutes int
}

// Empty reports whether the extractor found nothing usable at all.
func (p *PartialRecipe) Empty() bool {
	return p == nil || (p.Title == "" && p.Image == "" &&
		len(p.Ingredients) == 0 && len(p.Steps) == 0)
}

// Confidence grades how strong the signal behind an accepted extraction was.
type Confidence string

// Confidence levels recorded on import attempts.
const (
	ConfidenceLow    Confidence = "low"    // accepted on step count alone
	ConfidenceMedium Confidence = "medium" // soft food-word signal
	ConfidenceHigh   Confidence = "high"   // quantity/unit pattern match
)

// StrategyName identifies one extraction technique. Attempt outcomes are
// recorded per strategy so the best-known strategy for a recurring page
// shape can be looked up.
type StrategyName string

// Registered extraction strategies, in default priority order.
const (
	StrategyJSONLD        StrategyName = "jsonld"
	StrategyMicrodata     StrategyName = "microdata"
	StrategyPlatformState StrategyName = "platform-state"
	StrategyPlatformDOM   StrategyName = "platform-dom"
	StrategyEmbed         StrategyName = "oembed"
	StrategyHeadings      StrategyName = "heading-block"
	StrategyMetaDesc      StrategyName = "meta-description"
	StrategyCaption       StrategyName = "caption-inference"
	StrategyFallback      StrategyName = "title-image-only"
)

// Extractor is one member of the extraction family. Implementations are pure:
// document in, partial recipe (or nil) out. They return nil rather than an
// error when they find nothing, and must tolerate malformed markup.
type Extractor interface {
	// Name returns the strategy identifier used for attempt logging.
	Name() StrategyName

	// Extract scans the raw HTML of the page at pageURL and returns a
	// partial recipe, or nil if the document carries no usable signal for
	// this strategy.
	Extract(html string, pageURL string) (*PartialRecipe, error)
}
