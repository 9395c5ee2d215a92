package swagger

import _ "embed"

// OpenAPI contains the embedded OpenAPI YAML description of the console API.
//
//go:embed openapi.yaml
var OpenAPI []byte
