// Package docs registers the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o internal/docs
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
        "/api/admin/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Admin login",
                "parameters": [
                    {"description": "Admin credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/admin/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Dashboard counts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.summaryResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/applications/landlord": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["applications"],
                "summary": "List landlord applications, newest first",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.LandlordApplication"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["applications"],
                "summary": "Submit a landlord application",
                "parameters": [
                    {"type": "string", "description": "Client token that makes retries safe", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Landlord inquiry", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.landlordRequest"}}
                ],
                "responses": {
                    "200": {"description": "Replay of an earlier submission", "schema": {"$ref": "#/definitions/handler.createApplicationResponse"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.createApplicationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/applications/renter": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["applications"],
                "summary": "List renter applications, newest first",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.RenterApplication"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["applications"],
                "summary": "Submit a renter application",
                "parameters": [
                    {"type": "string", "description": "Client token that makes retries safe", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Renter inquiry", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.renterRequest"}}
                ],
                "responses": {
                    "200": {"description": "Replay of an earlier submission", "schema": {"$ref": "#/definitions/handler.createApplicationResponse"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.createApplicationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.LandlordApplication": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "fullName": {"type": "string"},
                "id": {"type": "string"},
                "location": {"type": "string"},
                "message": {"type": "string", "x-nullable": true},
                "phone": {"type": "string"},
                "propertyType": {"type": "string"}
            }
        },
        "domain.RenterApplication": {
            "type": "object",
            "properties": {
                "budgetRange": {"type": "string"},
                "createdAt": {"type": "string"},
                "fullName": {"type": "string"},
                "id": {"type": "string"},
                "location": {"type": "string"},
                "phone": {"type": "string"},
                "requirements": {"type": "string", "x-nullable": true}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "id": {"type": "string"},
                "role": {"type": "string"},
                "updatedAt": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "handler.authResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/domain.User"}
            }
        },
        "handler.createApplicationResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "handler.landlordRequest": {
            "type": "object",
            "required": ["fullName", "location", "phone", "propertyType"],
            "properties": {
                "fullName": {"type": "string", "minLength": 2, "maxLength": 120},
                "location": {"type": "string", "enum": ["nairobi", "mombasa", "kisumu", "eldoret", "nakuru", "thika", "other"]},
                "message": {"type": "string", "maxLength": 2000},
                "phone": {"type": "string", "minLength": 9, "maxLength": 32},
                "propertyType": {"type": "string", "enum": ["apartment-building", "single-units", "residential-house", "townhouse", "commercial", "other"]}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "handler.renterRequest": {
            "type": "object",
            "required": ["budgetRange", "fullName", "location", "phone"],
            "properties": {
                "budgetRange": {"type": "string", "enum": ["under-15k", "15k-30k", "30k-50k", "50k-80k", "80k-150k", "above-150k"]},
                "fullName": {"type": "string", "minLength": 2, "maxLength": 120},
                "location": {"type": "string", "enum": ["nairobi-westlands", "nairobi-kilimani", "nairobi-lavington", "nairobi-karen", "nairobi-kileleshwa", "nairobi-parklands", "nairobi-south-b", "nairobi-cbd", "mombasa", "kisumu", "eldoret", "nakuru", "other"]},
                "phone": {"type": "string", "minLength": 9, "maxLength": 32},
                "requirements": {"type": "string", "maxLength": 2000}
            }
        },
        "handler.summaryResponse": {
            "type": "object",
            "properties": {
                "generatedAt": {"type": "string"},
                "houseSeekers": {"type": "integer"},
                "propertyOwners": {"type": "integer"},
                "toContact": {"type": "integer"},
                "today": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Lead Funnel API",
	Description:      "Renter and landlord application intake with an admin dashboard.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
