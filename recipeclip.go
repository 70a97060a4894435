// Package recipeclip turns an arbitrary web page or social-media post URL
// into a normalized recipe record: title, hero image, ordered ingredients,
// and ordered steps. It classifies the site, runs an ordered list of
// extraction strategies with fallback, normalizes ingredient lines, and
// records which strategy worked for which shape of page so the pipeline can
// improve over time.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, rod/).
package recipeclip
