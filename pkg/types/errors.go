// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Error kinds surfaced by pipeline stages. Stages wrap these with context
// via %w; callers classify failures with errors.Is.
var (
	// ErrUpstreamUnavailable reports that the search or text-generation
	// provider was unreachable, returned an error status, or returned no
	// usable content.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrRender reports an unrecoverable document construction fault.
	ErrRender = errors.New("render failed")

	// ErrDelivery reports an SMTP authentication or transport failure.
	ErrDelivery = errors.New("delivery failed")

	// ErrValidation reports malformed input supplied at entry, such as an
	// empty product name or a recipient address that does not parse.
	ErrValidation = errors.New("invalid input")
)
