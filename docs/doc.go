// Package docs holds the generated OpenAPI documentation for the promptkit
// HTTP API. Handlers in internal/server/endpoints carry the route annotations.
//
// Promptkit API
//
//	@title			Promptkit API
//	@version		1.0
//	@description	Prompt assembly for image generation from structured character records.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http
package docs

//go:generate swag init -g ../cmd/promptkit/serve.go -o ./swagger --parseDependency --parseInternal
