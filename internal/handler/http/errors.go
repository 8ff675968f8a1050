// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// request carries no "Authorization" header.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrUnsupportedContentType is returned when a submission body is neither
	// form encoded nor JSON.
	ErrUnsupportedContentType = errors.New("unsupported content type")

	// ErrMalformedBody is returned when a submission body cannot be decoded.
	ErrMalformedBody = errors.New("malformed request body")
)
