// Package docs embeds the OpenAPI description served next to Swagger UI.
package docs

import _ "embed"

// OpenAPI is the OpenAPI 3 document for the users API.
//
//go:embed openapi.json
var OpenAPI []byte
