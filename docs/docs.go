// Package docs is generated by swaggo/swag from the handler annotations.
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
    "paths": {
        "/api/netlists": {
            "get": {
                "produces": ["application/json"],
                "tags": ["netlists"],
                "summary": "List netlists",
                "parameters": [
                    {"type": "integer", "default": 10, "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "description": "Offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.NetlistListResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["netlists"],
                "summary": "Create a netlist",
                "parameters": [
                    {"description": "Netlist", "name": "netlist", "in": "body", "required": true, "schema": {"$ref": "#/definitions/netlist.Payload"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Netlist"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/netlists/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["netlists"],
                "summary": "Get a netlist",
                "parameters": [
                    {"type": "string", "description": "Netlist ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Netlist"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "delete": {
                "tags": ["netlists"],
                "summary": "Delete a netlist",
                "parameters": [
                    {"type": "string", "description": "Netlist ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/netlists/{id}/download": {
            "get": {
                "produces": ["application/json"],
                "tags": ["netlists"],
                "summary": "Pre-signed download link",
                "parameters": [
                    {"type": "string", "description": "Netlist ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/netlists/{id}/raw": {
            "get": {
                "produces": ["application/json"],
                "tags": ["netlists"],
                "summary": "Download the submitted document",
                "parameters": [
                    {"type": "string", "description": "Netlist ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "handler.errorEnvelope": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handler.errorEnvelope"},
                "msg": {"type": "string"},
                "request_id": {"type": "string"}
            }
        },
        "model.Netlist": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "component_count": {"type": "integer"},
                "components": {"type": "array", "items": {"type": "object"}},
                "created_at": {"type": "string"},
                "description": {"type": "string"},
                "name": {"type": "string"},
                "net_count": {"type": "integer"},
                "nets": {"type": "array", "items": {"type": "object"}},
                "storage_path": {"type": "string"}
            }
        },
        "netlist.Payload": {
            "type": "object",
            "properties": {
                "components": {"type": "array", "items": {"type": "object"}},
                "description": {"type": "string"},
                "name": {"type": "string"},
                "nets": {"type": "array", "items": {"type": "object"}}
            }
        },
        "service.NetlistListResult": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/model.Netlist"}},
                "total": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Netlist API",
	Description:      "Stores validated circuit netlists and their archived source documents.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
