// Package swagger registers the API description served under /swagger.
package swagger

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
    "paths": {
        "/ping": {
            "get": {"tags": ["test"], "summary": "Endpoint just pings the server", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/signup": {
            "post": {
                "tags": ["users"], "summary": "Create a new account",
                "consumes": ["application/x-www-form-urlencoded"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "name": "email", "in": "formData", "required": true},
                    {"type": "string", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Player"}}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/login": {
            "post": {
                "tags": ["users"], "summary": "Log in",
                "consumes": ["application/x-www-form-urlencoded"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "login", "in": "formData", "required": true},
                    {"type": "string", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/auth/logout": {
            "delete": {"security": [{"ApiKeyAuth": []}], "tags": ["users"], "summary": "Log out", "responses": {"200": {"description": "OK"}}}
        },
        "/auth/me": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["users"], "summary": "Current user", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Player"}}}}
        },
        "/auth/friends": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["friends"], "summary": "Get a list of a user friends", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}}}},
            "post": {
                "security": [{"ApiKeyAuth": []}], "tags": ["friends"], "summary": "Add a friend",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"type": "object", "properties": {"username": {"type": "string"}}}}],
                "responses": {"201": {"description": "Created"}, "404": {"description": "Not Found"}}
            }
        },
        "/auth/stats/{username}": {
            "get": {
                "security": [{"ApiKeyAuth": []}], "tags": ["stats"], "summary": "Player stats",
                "parameters": [{"type": "string", "name": "username", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Stats"}}, "404": {"description": "Not Found"}}
            }
        },
        "/auth/chats/{friend}": {
            "get": {
                "security": [{"ApiKeyAuth": []}], "tags": ["chats"], "summary": "Chat history with a friend",
                "parameters": [{"type": "string", "name": "friend", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/auth/matches": {
            "get": {
                "security": [{"ApiKeyAuth": []}], "tags": ["matches"], "summary": "List the user's matches",
                "parameters": [{"type": "string", "name": "status", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Match"}}}}
            }
        },
        "/auth/matches/{id}": {
            "get": {
                "security": [{"ApiKeyAuth": []}], "tags": ["matches"], "summary": "Get a match",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Match"}}, "404": {"description": "Not Found"}}
            }
        },
        "/auth/matches/{id}/moves": {
            "post": {
                "security": [{"ApiKeyAuth": []}], "tags": ["matches"], "summary": "Play a move",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object", "properties": {"column": {"type": "integer"}}}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}
            }
        },
        "/auth/matches/{id}/forfeit": {
            "post": {
                "security": [{"ApiKeyAuth": []}], "tags": ["matches"], "summary": "Forfeit a match",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}
            }
        },
        "/auth/matches/{id}/observers": {
            "post": {
                "security": [{"ApiKeyAuth": []}], "tags": ["matches"], "summary": "Observe a match",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}], "tags": ["matches"], "summary": "Stop observing a match",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        }
    },
    "definitions": {
        "models.Player": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "email": {"type": "string"}, "memberSince": {"type": "string"}}
        },
        "models.Stats": {
            "type": "object",
            "properties": {
                "username": {"type": "string"}, "rating": {"type": "number"}, "matchCount": {"type": "integer"},
                "winCount": {"type": "integer"}, "forfaitWinCount": {"type": "integer"}, "forfaitLossCount": {"type": "integer"},
                "secondsPlayed": {"type": "integer"}, "moveCount": {"type": "integer"}
            }
        },
        "models.Match": {
            "type": "object",
            "properties": {
                "id": {"type": "string"}, "player1": {"type": "string"}, "player2": {"type": "string"},
                "board": {"type": "array", "items": {"type": "array", "items": {"type": "integer"}}},
                "status": {"type": "string"}, "winner": {"type": "integer"}, "playerTurn": {"type": "integer"},
                "datetimeBegin": {"type": "string"}, "datetimeEnd": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Connect4 API",
	Description:      "Gin-Gonic server for the Connect4 game API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
