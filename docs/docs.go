// Package docs registers the OpenAPI description served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "Bearer": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/health": {
            "get": {"tags": ["system"], "summary": "Service and dependency health", "responses": {"200": {"description": "OK"}, "503": {"description": "Dependency unavailable"}}}
        },
        "/reports": {
            "get": {"tags": ["reports"], "summary": "List reports", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["reports"], "summary": "Submit a report", "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid input"}, "429": {"description": "Rate limited"}}}
        },
        "/reports/mine": {
            "get": {"tags": ["reports"], "summary": "List the caller's reports", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/reports/map": {
            "get": {"tags": ["reports"], "summary": "Public map markers", "responses": {"200": {"description": "OK"}}}
        },
        "/reports/stats": {
            "get": {"tags": ["reports"], "summary": "Report counts by status and category", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/reports/events/stream": {
            "get": {"tags": ["reports"], "summary": "Live report events (SSE)", "security": [{"Bearer": []}], "produces": ["text/event-stream"], "responses": {"200": {"description": "Event stream"}, "503": {"description": "Event bus disabled"}}}
        },
        "/reports/{id}": {
            "get": {"tags": ["reports"], "summary": "Get a report", "security": [{"Bearer": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
        },
        "/reports/{id}/status": {
            "patch": {"tags": ["reports"], "summary": "Change report status", "security": [{"Bearer": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "409": {"description": "Invalid transition or stale version"}}}
        },
        "/reports/{id}/triage": {
            "patch": {"tags": ["reports"], "summary": "Set impact, urgency or priority override", "security": [{"Bearer": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}
        },
        "/reports/{id}/assignment": {
            "patch": {"tags": ["reports"], "summary": "Assign or unassign a report", "security": [{"Bearer": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}
        },
        "/reports/{id}/schedule": {
            "patch": {"tags": ["reports"], "summary": "Schedule work and set the SLA target", "security": [{"Bearer": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}
        },
        "/reports/{id}/district": {
            "patch": {"tags": ["reports"], "summary": "Change the report district", "security": [{"Bearer": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}
        },
        "/reports/{id}/evidence": {
            "get": {"tags": ["reports"], "summary": "List evidence", "security": [{"Bearer": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["reports"], "summary": "Upload evidence", "security": [{"Bearer": []}], "consumes": ["multipart/form-data"], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "file", "in": "formData", "required": true, "type": "file"}, {"name": "type", "in": "formData", "required": true, "type": "string"}], "responses": {"201": {"description": "Created"}, "413": {"description": "File too large"}}}
        },
        "/reports/{id}/comments": {
            "post": {"tags": ["reports"], "summary": "Add a comment", "security": [{"Bearer": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"201": {"description": "Created"}}}
        },
        "/reports/{id}/events": {
            "get": {"tags": ["reports"], "summary": "Report audit log", "security": [{"Bearer": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}
        },
        "/reports/survey/{token}": {
            "get": {"tags": ["surveys"], "summary": "Load a satisfaction survey", "parameters": [{"name": "token", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Unknown token"}}},
            "post": {"tags": ["surveys"], "summary": "Submit a satisfaction survey", "parameters": [{"name": "token", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "409": {"description": "Already answered"}}}
        },
        "/admin/settings/report": {
            "get": {"tags": ["admin"], "summary": "Report settings", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["admin"], "summary": "Update report settings", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "CivicTrack API",
	Description:      "Municipal incident report intake, triage and resolution.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
