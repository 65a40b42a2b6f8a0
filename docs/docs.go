// Package docs registers the swagger document served at /swagger/doc.json.
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
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness and database health",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "500": {"description": "Service degraded", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/users/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new account",
                "description": "Creates a user and returns it together with a signed token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/util.Response"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/util.Response"}},
                    "409": {"description": "Email already registered", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/users/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in",
                "description": "Verifies credentials and returns the user with a signed token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/users/me": {
            "get": {
                "tags": ["users"],
                "summary": "Get the authenticated user's profile",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/users/me/avatar": {
            "post": {
                "tags": ["users"],
                "summary": "Upload a profile picture",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "avatar", "in": "formData", "type": "file", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "400": {"description": "Missing or non-image file", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/users": {
            "get": {
                "tags": ["users"],
                "summary": "List all users (instructor only)",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/users/{id}": {
            "get": {
                "tags": ["users"],
                "summary": "Get a user by ID (self or instructor)",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            },
            "put": {
                "tags": ["users"],
                "summary": "Update a user's profile (self only; role immutable)",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            },
            "delete": {
                "tags": ["users"],
                "summary": "Delete a user and everything they own (instructor only)",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/quizzes": {
            "get": {
                "tags": ["quizzes"],
                "summary": "List quizzes (instructors see own with answers, students see published summaries)",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            },
            "post": {
                "tags": ["quizzes"],
                "summary": "Create a draft quiz with nested questions (instructor only)",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/util.Response"}},
                    "400": {"description": "Validation failure", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/quizzes/published": {
            "get": {
                "tags": ["quizzes"],
                "summary": "List published quizzes",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/quizzes/{id}": {
            "get": {
                "tags": ["quizzes"],
                "summary": "Get a quiz (owner gets answer key, student gets redacted published view)",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            },
            "put": {
                "tags": ["quizzes"],
                "summary": "Update a quiz; sending questions replaces the full set (owner only)",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "400": {"description": "Validation failure", "schema": {"$ref": "#/definitions/util.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            },
            "delete": {
                "tags": ["quizzes"],
                "summary": "Delete a quiz; needs force=true when submissions exist (owner only)",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "force", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/util.Response"}},
                    "409": {"description": "Quiz has submissions", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/quizzes/{id}/questions": {
            "post": {
                "tags": ["quizzes"],
                "summary": "Append a question to a quiz (owner only)",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/util.Response"}},
                    "400": {"description": "Validation failure", "schema": {"$ref": "#/definitions/util.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/quizzes/{id}/publish": {
            "post": {
                "tags": ["quizzes"],
                "summary": "Publish a quiz after structural validation; one-way (owner only)",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "400": {"description": "Validation failure", "schema": {"$ref": "#/definitions/util.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/quizzes/{id}/start": {
            "post": {
                "tags": ["submissions"],
                "summary": "Start an attempt on a published quiz; resumes an open attempt (student only)",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {
                    "201": {"description": "Created or resumed", "schema": {"$ref": "#/definitions/util.Response"}},
                    "403": {"description": "Quiz not published", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/quizzes/{id}/submit": {
            "post": {
                "tags": ["submissions"],
                "summary": "Grade and complete the active attempt (student only)",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "Graded", "schema": {"$ref": "#/definitions/util.Response"}},
                    "400": {"description": "Malformed answers", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Quiz missing or no active attempt", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/quizzes/{id}/submission": {
            "get": {
                "tags": ["submissions"],
                "summary": "Get the caller's latest attempt for a quiz (student only)",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/submissions/{id}": {
            "get": {
                "tags": ["submissions"],
                "summary": "Get a submission (its student or the quiz's owning instructor)",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/quizzes/{id}/attempts": {
            "get": {
                "tags": ["analytics"],
                "summary": "List every attempt on an owned quiz (instructor only)",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/quizzes/{id}/analytics": {
            "get": {
                "tags": ["analytics"],
                "summary": "Aggregate statistics for an owned quiz (instructor only)",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/quizzes/{id}/report": {
            "get": {
                "tags": ["analytics"],
                "summary": "Per-submission report for an owned quiz (instructor only)",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        }
    },
    "definitions": {
        "util.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Quiz Platform API",
	Description:      "Quiz authoring, taking, and analytics service",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
