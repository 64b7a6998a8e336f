// Package api exposes the user service over HTTP: JSON request decoding and
// validation, handlers for the /users and /auth resources, and the single
// place where service errors become status codes and client-safe messages.
//
// Subpackage middleware holds tracing, bearer authentication and request
// metrics; subpackage shared holds the response helpers and context keys.
package api
