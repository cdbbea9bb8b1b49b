// Package docs holds the OpenAPI description served at /swagger/*.
// Regenerate with `swag init -g cmd/main.go` after changing handler annotations.
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
        "/api/create-checkout-session": {
            "post": {
                "tags": ["checkout"],
                "summary": "Start a hosted checkout session",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/services.CheckoutRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.CheckoutSession"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/api/bookings": {
            "post": {
                "tags": ["bookings"],
                "summary": "Record a booking",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/services.CreateBookingRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Booking"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "402": {"description": "Payment Required", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/api/admin/bookings": {
            "get": {
                "tags": ["bookings"],
                "summary": "List bookings",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "status", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/api/admin/bookings/export": {
            "get": {
                "tags": ["bookings"],
                "summary": "Export bookings as xlsx",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register and start a session",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in with email or username",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/api/auth/logout": {
            "post": {"tags": ["auth"], "summary": "Revoke the session", "responses": {"200": {"description": "OK"}}}
        },
        "/api/auth/me": {
            "get": {
                "tags": ["auth"],
                "summary": "Current session user",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/api/webhooks/stripe": {
            "post": {
                "tags": ["checkout"],
                "summary": "Stripe event receiver",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/api/blog/posts": {
            "get": {"tags": ["blog"], "summary": "Published posts", "responses": {"200": {"description": "OK"}}}
        },
        "/api/blog/posts/{slug}": {
            "get": {
                "tags": ["blog"],
                "summary": "Published post by slug",
                "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/team": {
            "get": {"tags": ["team"], "summary": "Active team members", "responses": {"200": {"description": "OK"}}}
        },
        "/api/job-applications": {
            "post": {
                "tags": ["careers"],
                "summary": "Submit a job application",
                "consumes": ["multipart/form-data", "application/json"],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/quotes": {
            "post": {
                "tags": ["quotes"],
                "summary": "Request a quote",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/admin/stats": {
            "get": {
                "tags": ["admin"],
                "summary": "Dashboard figures",
                "parameters": [{"type": "boolean", "name": "refresh", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DashboardStats"}}}
            }
        }
    },
    "definitions": {
        "common.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"},
                        "details": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "services.CheckoutRequest": {
            "type": "object",
            "required": ["serviceName"],
            "properties": {
                "price": {"type": "number"},
                "serviceName": {"type": "string"},
                "description": {"type": "string"},
                "category": {"type": "string"},
                "customerEmail": {"type": "string"}
            }
        },
        "services.CheckoutSession": {
            "type": "object",
            "properties": {
                "sessionId": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "services.CreateBookingRequest": {
            "type": "object",
            "required": ["customerName", "customerEmail", "customerPhone", "serviceName"],
            "properties": {
                "customerName": {"type": "string"},
                "customerEmail": {"type": "string"},
                "customerPhone": {"type": "string"},
                "customerAddress": {"type": "string"},
                "notes": {"type": "string"},
                "serviceName": {"type": "string"},
                "servicePrice": {"type": "number"},
                "serviceDescription": {"type": "string"},
                "serviceCategory": {"type": "string"},
                "paymentStatus": {"type": "string", "enum": ["pending", "paid", "refunded", "failed"]},
                "stripeSessionId": {"type": "string"}
            }
        },
        "models.Booking": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "customerName": {"type": "string"},
                "customerEmail": {"type": "string"},
                "serviceName": {"type": "string"},
                "servicePrice": {"type": "number"},
                "status": {"type": "string", "enum": ["pending", "confirmed", "scheduled", "completed", "cancelled"]},
                "paymentStatus": {"type": "string", "enum": ["pending", "paid", "refunded", "failed"]},
                "stripeSessionId": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "models.DashboardStats": {
            "type": "object",
            "properties": {
                "bookingsByStatus": {"type": "object", "additionalProperties": {"type": "integer"}},
                "paidRevenue": {"type": "number"},
                "pendingApplications": {"type": "integer"},
                "openQuotes": {"type": "integer"},
                "publishedPosts": {"type": "integer"},
                "teamMembers": {"type": "integer"},
                "generatedAt": {"type": "string"}
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
	Title:            "After Hours HVAC API",
	Description:      "Bookings, checkout, careers, blog and team administration for After Hours HVAC.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
