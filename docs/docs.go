// Package docs holds the OpenAPI description served under /swagger.
// Regenerate with `swag init -g cmd/api/main.go` after changing handler annotations.
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
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Create an account",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/credentials"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign in with email and password",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/credentials"}}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/auth/guest": {
            "post": {
                "tags": ["auth"],
                "summary": "Start an anonymous session",
                "produces": ["application/json"],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/auth/upgrade": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Turn the current guest account into a registered one",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/credentials"}}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}
            }
        },
        "/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Current user profile",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/activities": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["activities"],
                "summary": "Activity history, newest first",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["activities"],
                "summary": "Log an activity",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/activity"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "403": {"description": "Guest limit reached"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["activities"],
                "summary": "Delete the whole activity history",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/activities/estimate": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["activities"],
                "summary": "Estimate an activity without logging it",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/activity"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/activities/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["activities"],
                "summary": "Download the activity history as CSV",
                "produces": ["text/csv"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/activities/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["activities"],
                "summary": "Delete one activity",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/stats/dashboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["stats"],
                "summary": "Daily and weekly emission rollup with goal progress",
                "parameters": [{"type": "string", "name": "X-Timezone", "in": "header"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/badges": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["stats"],
                "summary": "Badges and logging streaks",
                "parameters": [{"type": "string", "name": "X-Timezone", "in": "header"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/goals": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["goals"],
                "summary": "All goals, newest week first",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["goals"],
                "summary": "Set this week's emission goal, replacing any active one",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"type": "object", "properties": {"goal": {"type": "number"}}}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/goals/active": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["goals"],
                "summary": "Active goal with progress for its week",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/reviews": {
            "get": {
                "tags": ["reviews"],
                "summary": "Latest reviews, newest first",
                "parameters": [{"in": "query", "name": "limit", "type": "integer", "description": "page size (default 20, max 100)"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["reviews"],
                "summary": "Rate the app",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"type": "object", "properties": {"name": {"type": "string"}, "rating": {"type": "integer", "minimum": 1, "maximum": 5}, "comment": {"type": "string"}}}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/assistant/chat": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["assistant"],
                "summary": "Ask the sustainability assistant",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"type": "object", "properties": {"message": {"type": "string"}}}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "503": {"description": "Service Unavailable"}}
            }
        },
        "/assistant/suggestions": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["assistant"],
                "summary": "Personalised reduction tips from this week's activities",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        },
        "/assistant/faqs": {
            "get": {
                "tags": ["assistant"],
                "summary": "Frequently asked questions",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "credentials": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 8},
                "display_name": {"type": "string"}
            }
        },
        "activity": {
            "type": "object",
            "required": ["category"],
            "properties": {
                "category": {"type": "string", "enum": ["travel", "food", "household", "waste"]},
                "date": {"type": "string"},
                "details": {
                    "type": "object",
                    "properties": {
                        "fuel_type": {"type": "string"},
                        "vehicle_type": {"type": "string"},
                        "distance_km": {"type": "number"},
                        "cooking_fuel": {"type": "string"},
                        "cooking_hours": {"type": "number"},
                        "appliance": {"type": "string"},
                        "usage": {"type": "number"},
                        "waste_generated_kg": {"type": "number"},
                        "waste_recycled_kg": {"type": "number"}
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "EcoTrack API",
	Description:      "Carbon footprint tracking: activity logging, weekly goals, dashboards and an assistant.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
