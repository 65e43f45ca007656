// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package docs registers the OpenAPI document served under /swagger/.
// Regenerate with: swag init -g cmd/server/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Get service health",
                "responses": {"200": {"description": "Health status", "schema": {"$ref": "#/definitions/api.APIResponse"}}}
            }
        },
        "/health/live": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "Alive", "schema": {"$ref": "#/definitions/api.APIResponse"}}}
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "Ready", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "503": {"description": "Not ready", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/titles": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Catalog"],
                "summary": "List catalog titles",
                "responses": {"200": {"description": "Titles", "schema": {"$ref": "#/definitions/api.APIResponse"}}}
            }
        },
        "/titles/autocomplete": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Catalog"],
                "summary": "Autocomplete titles",
                "parameters": [
                    {"type": "string", "description": "Title prefix", "name": "q", "in": "query", "required": true},
                    {"type": "integer", "description": "Maximum suggestions (1-50)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Suggestions", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "Invalid query", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/carousel": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Recommendations"],
                "summary": "Startup carousel",
                "responses": {
                    "200": {"description": "Carousel posters", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Carousel disabled", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "503": {"description": "Carousel still loading", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/recommendations": {
            "get": {
                "description": "Looks up the title, ranks similar movies and keeps those whose poster resolves. Poster failures are reported as notices.",
                "produces": ["application/json"],
                "tags": ["Recommendations"],
                "summary": "Recommend similar movies",
                "parameters": [
                    {"type": "string", "description": "Movie title (case-insensitive)", "name": "title", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "Recommendations, possibly empty", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "Invalid title", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Title not in catalog", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {},
                "message": {"type": "string"},
                "request_id": {"type": "string"}
            }
        },
        "api.APIMeta": {
            "type": "object",
            "properties": {
                "duration_ms": {"type": "integer"},
                "request_id": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "api.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/api.APIError"},
                "meta": {"$ref": "#/definitions/api.APIMeta"},
                "success": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Marquee API",
	Description:      "Movie recommendations with TMDB poster resolution.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
