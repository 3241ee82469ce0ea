// Package docs registers the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/health": {"get": {"tags": ["system"], "summary": "Health check", "responses": {"200": {"description": "OK"}}}},
        "/metrics": {"get": {"tags": ["system"], "summary": "Prometheus metrics", "produces": ["text/plain"], "responses": {"200": {"description": "OK"}}}},
        "/auth/sign-up": {"post": {"tags": ["auth"], "summary": "Register an operator",
            "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/credentials"}}],
            "responses": {"200": {"description": "id"}, "400": {"description": "bad body"}, "409": {"description": "user exists"}}}},
        "/auth/sign-in": {"post": {"tags": ["auth"], "summary": "Issue an access token",
            "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/credentials"}}],
            "responses": {"200": {"description": "token"}, "401": {"description": "invalid credentials"}}}},
        "/api/v1/trips": {
            "post": {"tags": ["trips"], "summary": "Store a trip schedule", "security": [{"BearerAuth": []}],
                "consumes": ["application/json", "application/yaml"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"201": {"description": "id, days"}, "400": {"description": "invalid schedule"}}},
            "get": {"tags": ["trips"], "summary": "List stored trips", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "count, trips"}}}
        },
        "/api/v1/trips/{id}": {
            "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
            "get": {"tags": ["trips"], "summary": "Get a stored trip schedule", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "schedule"}, "404": {"description": "not found"}}},
            "delete": {"tags": ["trips"], "summary": "Delete a stored trip schedule", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "deleted"}, "404": {"description": "not found"}}}
        },
        "/api/v1/trips/{id}/days/{day}/log": {"get": {"tags": ["logsheet"], "summary": "Render one day of a stored trip",
            "security": [{"BearerAuth": []}],
            "parameters": [
                {"in": "path", "name": "id", "required": true, "type": "string"},
                {"in": "path", "name": "day", "required": true, "type": "integer", "minimum": 1}
            ],
            "responses": {"200": {"description": "draw list"}, "400": {"description": "bad day"}, "404": {"description": "trip or day not found"}}}},
        "/api/v1/logsheet/render": {"post": {"tags": ["logsheet"], "summary": "Render a caller-supplied day",
            "security": [{"BearerAuth": []}],
            "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"type": "object"}}],
            "responses": {"200": {"description": "draw list"}, "400": {"description": "bad body"}}}},
        "/api/v1/logsheet/layout": {"get": {"tags": ["logsheet"], "summary": "Active layout constants",
            "security": [{"BearerAuth": []}], "responses": {"200": {"description": "layout"}}}},
        "/api/v1/logs/": {"get": {"tags": ["logs"], "summary": "List render audit events",
            "security": [{"BearerAuth": []}],
            "parameters": [
                {"in": "query", "name": "from", "type": "string"},
                {"in": "query", "name": "to", "type": "string"},
                {"in": "query", "name": "type", "type": "string", "enum": ["TOTALS_MISMATCH", "MALFORMED_SEGMENT", "TRIP_INGESTED", "TRIP_DELETED"]},
                {"in": "query", "name": "trip_id", "type": "string"},
                {"in": "query", "name": "day", "type": "integer", "minimum": 1}
            ],
            "responses": {"200": {"description": "count, events"}, "400": {"description": "bad filter"}}}},
        "/ws/trips/{id}/days/{day}": {"get": {"tags": ["logsheet"], "summary": "Stream a day's log sheet over WebSocket",
            "parameters": [
                {"in": "path", "name": "id", "required": true, "type": "string"},
                {"in": "path", "name": "day", "required": true, "type": "integer"},
                {"in": "query", "name": "interval", "type": "string"},
                {"in": "query", "name": "interval_ms", "type": "integer"},
                {"in": "query", "name": "token", "type": "string"}
            ],
            "responses": {"101": {"description": "switching protocols"}, "404": {"description": "trip or day not found"}}}}
    },
    "definitions": {
        "credentials": {"type": "object", "required": ["username", "password"],
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Driver Log Sheet API",
	Description:      "Stores trip schedules and renders FMCSA daily log sheets as draw lists.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
