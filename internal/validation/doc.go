// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validation implements the request-scoped field validator used by
// community forms (registration, login, profile and contact forms).
//
// Core concepts:
//   - Rule: one check from a closed vocabulary (required, min, max, matches,
//     agree, unique, email, timezone, isactive, isbanned, alphanumeric,
//     numeric). Every variant is its own type carrying typed arguments.
//   - FieldRules: the ordered list of fields and the rules applied to each.
//   - Messages: caller supplied overrides, generic per field or per rule.
//   - RecordStore: optional persistence collaborator for unique/isactive/isbanned.
//   - Sanitizer: escapes field names before they are placed into messages.
//
// Usage:
//
//	v := validation.New(sanitizer.New(), validation.WithRecordStore(records)).
//		Messages(validation.Messages{"username": validation.Generic("Pick a username")})
//	if _, err := v.Check(ctx, source, validation.FieldRules{
//		validation.Field("username", validation.Required(), validation.Min(3), validation.Unique("users")),
//	}); err != nil {
//		// misconfigured rules or the record store failed
//	}
//	if !v.Passed() {
//		for _, msg := range v.Errors() { ... }
//	}
//
// Validation failures are data (Errors), never Go errors. Check returns an
// error only for configuration defects and record store failures.
package validation
