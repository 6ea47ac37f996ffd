// Package api embeds the OpenAPI description of the Trip Planner API.
// It is imported by cmd/api to serve the document at /openapi.yaml.
package api

import _ "embed"

// OpenAPI contains the raw bytes of openapi.yaml, embedded at compile time.
//
//go:embed openapi.yaml
var OpenAPI []byte
