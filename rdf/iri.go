package rdf

import (
	"net/url"
	"strings"
)

// resolveIRI resolves a relative IRI against a base IRI according to
// RFC 3986. An empty base leaves the reference untouched; resolving
// relative IRIs without a base is the producing parser's concern, not
// the model's.
func resolveIRI(base, reference string) string {
	if base == "" {
		return reference
	}
	refURL, err := url.Parse(reference)
	if err != nil {
		return fallbackResolve(base, reference)
	}
	if refURL.Scheme != "" {
		return reference
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return fallbackResolve(base, reference)
	}
	return baseURL.ResolveReference(refURL).String()
}

// fallbackResolve concatenates against the base's last path segment when
// net/url cannot parse either side.
func fallbackResolve(base, reference string) string {
	if strings.HasSuffix(base, "/") {
		return base + reference
	}
	lastSlash := strings.LastIndex(base, "/")
	if lastSlash >= 0 {
		return base[:lastSlash+1] + reference
	}
	return base + "/" + reference
}
