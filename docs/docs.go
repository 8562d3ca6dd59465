package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "Quadrant API Documentation",
        "title": "Quadrant API",
        "version": "1.0"
    },
    "host": "localhost:8080",
    "basePath": "/api/v1",
    "schemes": ["http"],
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register",
                "description": "Create an account with email and password",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "credentials",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "email": {"type": "string", "example": "me@example.com"},
                                "password": {"type": "string", "example": "hunter2hunter2"}
                            }
                        }
                    }
                ],
                "responses": {
                    "201": {"description": "Account created"},
                    "409": {"description": "Email already registered"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Login",
                "description": "Login with email and password",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "credentials",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "email": {"type": "string", "example": "me@example.com"},
                                "password": {"type": "string", "example": "hunter2hunter2"}
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {"description": "Login successful"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Refresh access token",
                "description": "Rotate a refresh token and mint a fresh access token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Token refreshed"},
                    "401": {"description": "Invalid refresh token"}
                }
            }
        },
        "/todos": {
            "get": {
                "tags": ["Todos"],
                "summary": "List todos",
                "description": "Caller's todos, newest first, capped at 20",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Todo list"},
                    "401": {"description": "Unauthorized"}
                }
            },
            "post": {
                "tags": ["Todos"],
                "summary": "Create todo",
                "description": "Title required; priority defaults to medium, due date to end of day",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Todo created"},
                    "400": {"description": "Title is required"}
                }
            }
        },
        "/todos/{id}": {
            "get": {
                "tags": ["Todos"],
                "summary": "Get todo",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Todo"},
                    "404": {"description": "Todo not found"}
                }
            },
            "put": {
                "tags": ["Todos"],
                "summary": "Update todo",
                "description": "Partial update; absent fields are left untouched",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Updated todo"},
                    "404": {"description": "Todo not found"}
                }
            },
            "delete": {
                "tags": ["Todos"],
                "summary": "Delete todo",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Todo deleted"},
                    "404": {"description": "Todo not found"}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer' followed by a space and JWT token"
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "Quadrant API",
	Description:      "Quadrant API Documentation",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
