// Package http implements the HTTP transport of go-community.
//
// It wires the chi router, the trace id and access log middleware, bearer
// token authentication and the handlers for the account and form endpoints.
// Submissions arrive as form posts (or JSON objects of strings) and are
// handed to the account service as a validation.Source. Failed validations
// are answered with 422 and the ordered list of messages, either as JSON or,
// for htmx-style callers, as an HTML fragment.
package http
