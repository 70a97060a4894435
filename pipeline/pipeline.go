// Package pipeline implements the extraction orchestrator: fetch, classify,
// run the category's strategy list until a candidate clears the confidence
// check, resolve title and image, and record the attempt for learning.
package pipeline

import (
	"context"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/scsmith60/recipeclip"
	"github.com/scsmith60/recipeclip/goquery"
)

const (
	// refetchTimeout bounds the single mobile-identity refetch issued for
	// platform pages that arrive without their embedded state blob.
	refetchTimeout = 8 * time.Second

	// embedTimeout bounds the oEmbed stage. On timeout the stage yields no
	// candidate and the pipeline moves on.
	embedTimeout = 5 * time.Second

	// learnTimeout bounds the asynchronous attempt-log and pattern writes.
	learnTimeout = 5 * time.Second
)

// Orchestrator runs the extraction state machine for one URL at a time.
// Fetcher, Classifier, and Configs are required; the rest are optional and
// disable their stage or side effect when nil. Concurrent Extract calls on
// different URLs are independent.
type Orchestrator struct {
	Fetcher    recipeclip.Fetcher
	Classifier recipeclip.SiteClassifier
	Configs    recipeclip.ConfigService

	// Embed powers the oEmbed stage on platform pages.
	Embed recipeclip.EmbedClient

	// Text powers caption inference on generic pages: main-content text,
	// boilerplate removed, fed to the free-text parser.
	Text recipeclip.TextExtractor

	// Attempts, Patterns, and Samples feed the learning store. All writes
	// are asynchronous and best-effort; call Wait before shutdown to flush
	// them.
	Attempts recipeclip.AttemptLogger
	Patterns recipeclip.PatternService
	Samples  recipeclip.SampleThrottle

	wg sync.WaitGroup
}

// candidate is an accepted stage result.
type candidate struct {
	name       recipeclip.StrategyName
	partial    *recipeclip.PartialRecipe
	confidence recipeclip.Confidence
}

// stageFunc is one named extraction stage: document in, candidate plus
// earned confidence out. A stage that finds nothing, or whose candidate
// fails the confidence check, returns an empty confidence.
type stageFunc func(ctx context.Context, html, pageURL string) (*recipeclip.PartialRecipe, recipeclip.Confidence)

// Extract turns the page at rawurl into a normalized recipe record. The
// only hard failure is an unparsable input URL; every other failure mode
// degrades to a less complete result. Ingredients and Steps are always
// non-nil.
func (o *Orchestrator) Extract(ctx context.Context, rawurl string) (*recipeclip.RecipeMeta, error) {
	u, err := url.Parse(rawurl)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, recipeclip.Errorf(recipeclip.EINVALID, "invalid url %q", rawurl)
	}
	if o.Fetcher == nil || o.Classifier == nil {
		return nil, recipeclip.Errorf(recipeclip.EINTERNAL, "orchestrator missing fetcher or classifier")
	}

	var fetchErr error
	html, err := o.Fetcher.Fetch(ctx, rawurl, recipeclip.IdentityDesktop)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		fetchErr = err
		html = ""
	}

	category := o.Classifier.Classify(rawurl)

	// Platform pages sometimes strip the state blob for desktop clients
	// but serve it to mobile ones. One refetch, keep the larger body.
	if category.Platform() && !goquery.HasStateBlob(html) {
		if alt := o.refetchMobile(ctx, rawurl); len(alt) > len(html) {
			html = alt
		}
	}

	cfg := o.configFor(ctx, category)
	fingerprint := goquery.Fingerprint(html)
	strategies := o.orderStrategies(ctx, cfg.Strategies, category, fingerprint)

	var accepted *candidate
	var attempted []recipeclip.StrategyName
	for _, name := range strategies {
		stage := o.stage(name)
		if stage == nil {
			continue
		}
		attempted = append(attempted, name)
		partial, conf := stage(ctx, html, rawurl)
		if conf == "" {
			continue
		}
		accepted = &candidate{name: name, partial: partial, confidence: conf}
		break
	}

	meta := o.finalize(rawurl, html, category, accepted)
	o.discover(ctx, rawurl, accepted)
	o.learn(ctx, u, category, cfg.Version, fingerprint, html, attempted, accepted, meta, fetchErr)
	return meta, nil
}

// Wait blocks until all in-flight learning writes have finished.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

// stage maps a strategy name to its stage function. Structured stages may
// accept on step count alone; caption-flavored stages may accept on the
// soft food-word signal.
func (o *Orchestrator) stage(name recipeclip.StrategyName) stageFunc {
	switch name {
	case recipeclip.StrategyJSONLD:
		return extractorStage(goquery.NewJSONLDExtractor(), false, true)
	case recipeclip.StrategyMicrodata:
		return extractorStage(goquery.NewMicrodataExtractor(), false, true)
	case recipeclip.StrategyPlatformState:
		return extractorStage(goquery.NewPlatformStateExtractor(), true, false)
	case recipeclip.StrategyPlatformDOM:
		return extractorStage(goquery.NewPlatformDOMExtractor(), true, false)
	case recipeclip.StrategyHeadings:
		return extractorStage(goquery.NewHeadingBlockExtractor(), false, false)
	case recipeclip.StrategyMetaDesc:
		return extractorStage(goquery.NewMetaDescriptionExtractor(), true, false)
	case recipeclip.StrategyEmbed:
		return o.embedStage
	case recipeclip.StrategyCaption:
		return o.captionStage
	}
	// StrategyFallback is not a stage; the final pass covers it.
	return nil
}

// extractorStage lifts a pure extractor into a stage with the given
// acceptance rules.
func extractorStage(e recipeclip.Extractor, allowSoft, allowStepsOnly bool) stageFunc {
	return func(ctx context.Context, html, pageURL string) (*recipeclip.PartialRecipe, recipeclip.Confidence) {
		p, err := e.Extract(html, pageURL)
		if err != nil || p.Empty() {
			return nil, ""
		}
		return p, grade(p, allowSoft, allowStepsOnly)
	}
}

// embedStage asks the platform's public embed endpoint for a caption when
// page scraping yielded nothing. Network errors and timeouts produce no
// candidate.
func (o *Orchestrator) embedStage(ctx context.Context, html, pageURL string) (*recipeclip.PartialRecipe, recipeclip.Confidence) {
	if o.Embed == nil {
		return nil, ""
	}
	ctx, cancel := context.WithTimeout(ctx, embedTimeout)
	defer cancel()

	info, err := o.Embed.Embed(ctx, pageURL)
	if err != nil || info == nil {
		return nil, ""
	}
	p := &recipeclip.PartialRecipe{Image: info.ThumbnailURL}
	if r := recipeclip.ParseCaption(info.Title); r != nil {
		p.Ingredients = r.Ingredients
		p.Steps = r.Steps
	}
	if p.Empty() {
		return nil, ""
	}
	return p, grade(p, true, false)
}

// captionStage runs free-text caption inference over the page's extracted
// main text. Used only when no structured signal exists at all.
func (o *Orchestrator) captionStage(ctx context.Context, html, pageURL string) (*recipeclip.PartialRecipe, recipeclip.Confidence) {
	if o.Text == nil {
		return nil, ""
	}
	_, text, err := o.Text.ExtractText(html)
	if err != nil || text == "" {
		return nil, ""
	}
	r := recipeclip.ParseCaption(text)
	if r == nil {
		return nil, ""
	}
	p := &recipeclip.PartialRecipe{Ingredients: r.Ingredients, Steps: r.Steps}
	return p, grade(p, true, false)
}

// grade returns the confidence a candidate earns, or "" when it fails the
// check. High needs two ingredient lines with at least one quantity/unit
// match; medium needs two short food-word lines and is only open to loose
// sources; low accepts on step count alone for structured sources.
func grade(p *recipeclip.PartialRecipe, allowSoft, allowStepsOnly bool) recipeclip.Confidence {
	if len(p.Ingredients) >= 2 {
		for _, line := range p.Ingredients {
			if recipeclip.IngredientLike(line) {
				return recipeclip.ConfidenceHigh
			}
		}
		if allowSoft {
			short := 0
			for _, line := range p.Ingredients {
				if len(line) <= 60 && recipeclip.FoodWordCount(line) > 0 {
					short++
				}
			}
			if short >= 2 {
				return recipeclip.ConfidenceMedium
			}
		}
	}
	if allowStepsOnly && len(p.Steps) >= 1 {
		return recipeclip.ConfidenceLow
	}
	return ""
}

// finalize merges the accepted candidate into the result and recomputes
// title and image fresh, unless a structured match supplied its own.
func (o *Orchestrator) finalize(rawurl, html string, category recipeclip.SiteCategory, accepted *candidate) *recipeclip.RecipeMeta {
	meta := &recipeclip.RecipeMeta{
		URL:         rawurl,
		Ingredients: []string{},
		Steps:       []string{},
	}
	if accepted != nil {
		meta.Ingredients = recipeclip.NormalizeIngredients(accepted.partial.Ingredients)
		if len(accepted.partial.Steps) > 0 {
			meta.Steps = accepted.partial.Steps
		}
		meta.TotalMinutes = accepted.partial.TotalMinutes
	}

	structured := accepted != nil &&
		(accepted.name == recipeclip.StrategyJSONLD || accepted.name == recipeclip.StrategyMicrodata)

	if structured && accepted.partial.Title != "" {
		meta.Title = goquery.CleanTitle(accepted.partial.Title, goquery.SiteName(html))
	} else {
		meta.Title = goquery.NewTitleResolver().Resolve(html, rawurl)
	}

	if structured && accepted.partial.Image != "" {
		meta.Image = accepted.partial.Image
	} else if img := goquery.MetaImage(html); img != "" {
		meta.Image = img
	} else if accepted != nil {
		meta.Image = accepted.partial.Image
	}

	if category.Platform() && accepted == nil && !goquery.HasStateBlob(html) {
		meta.NeedsClientRender = true
	}
	return meta
}

// discover records the URL's host as a recipe site when structured markup
// proved it serves recipes. Best-effort; the classifier skips platforms and
// already-classified hosts itself.
func (o *Orchestrator) discover(ctx context.Context, rawurl string, accepted *candidate) {
	if accepted == nil {
		return
	}
	var method recipeclip.DetectionMethod
	switch accepted.name {
	case recipeclip.StrategyJSONLD:
		method = recipeclip.DetectJSONLD
	case recipeclip.StrategyMicrodata:
		method = recipeclip.DetectMicrodata
	default:
		return
	}
	_ = o.Classifier.DiscoverIfNeeded(ctx, rawurl, method)
}

// learn writes the attempt log row and the per-pattern counters in the
// background. Failures are swallowed; the extraction result is already on
// its way back to the caller.
func (o *Orchestrator) learn(ctx context.Context, u *url.URL, category recipeclip.SiteCategory, version, fingerprint, html string, attempted []recipeclip.StrategyName, accepted *candidate, meta *recipeclip.RecipeMeta, fetchErr error) {
	if o.Attempts == nil && o.Patterns == nil {
		return
	}

	attempt := &recipeclip.ImportAttempt{
		URL:           meta.URL,
		SiteCategory:  category,
		ParserVersion: version,
		StrategyUsed:  recipeclip.StrategyFallback,
		Success:       accepted != nil,
		Ingredients:   len(meta.Ingredients),
		Steps:         len(meta.Steps),
	}
	if accepted != nil {
		attempt.StrategyUsed = accepted.name
		attempt.Confidence = accepted.confidence
	}
	if fetchErr != nil {
		attempt.ErrorMessage = fetchErr.Error()
	}
	if o.Samples != nil {
		key := strings.ToLower(u.Hostname()) + "|" + fingerprint
		if o.Samples.ShouldSample(key) {
			attempt.RawHTMLSample = html
		}
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), learnTimeout)
		defer cancel()

		if o.Attempts != nil {
			_ = o.Attempts.AppendAttempt(ctx, attempt)
		}
		if o.Patterns != nil {
			for _, name := range attempted {
				success := accepted != nil && name == accepted.name
				_ = o.Patterns.UpsertPattern(ctx, category, fingerprint, name, version, success)
			}
		}
	}()
}

// refetchMobile issues the one alternate-identity fetch, bounded by its own
// timeout. Errors yield an empty body, which loses the size comparison.
func (o *Orchestrator) refetchMobile(ctx context.Context, rawurl string) string {
	ctx, cancel := context.WithTimeout(ctx, refetchTimeout)
	defer cancel()

	alt, err := o.Fetcher.Fetch(ctx, rawurl, recipeclip.IdentityMobile)
	if err != nil {
		return ""
	}
	return alt
}

// configFor resolves the category's active config, falling back to the
// compile-time defaults when the configured service fails.
func (o *Orchestrator) configFor(ctx context.Context, category recipeclip.SiteCategory) *recipeclip.ParserConfig {
	if o.Configs != nil {
		if cfg, err := o.Configs.ConfigFor(ctx, category); err == nil {
			return cfg
		}
	}
	cfg, err := NewStaticConfigService().ConfigFor(ctx, category)
	if err != nil {
		return &recipeclip.ParserConfig{
			Category:   category,
			Version:    "v1",
			Strategies: []recipeclip.StrategyName{recipeclip.StrategyJSONLD, recipeclip.StrategyFallback},
		}
	}
	return cfg
}

// orderStrategies front-loads the historically best strategy for this page
// pattern when the learning store suggests one. Purely an optimization; the
// configured order is kept otherwise.
func (o *Orchestrator) orderStrategies(ctx context.Context, strategies []recipeclip.StrategyName, category recipeclip.SiteCategory, fingerprint string) []recipeclip.StrategyName {
	if o.Patterns == nil {
		return strategies
	}
	best, err := o.Patterns.BestStrategy(ctx, category, fingerprint)
	if err != nil {
		return strategies
	}
	idx := slices.Index(strategies, best.Method)
	if idx <= 0 {
		return strategies
	}
	out := make([]recipeclip.StrategyName, 0, len(strategies))
	out = append(out, best.Method)
	out = append(out, strategies[:idx]...)
	out = append(out, strategies[idx+1:]...)
	return out
}
