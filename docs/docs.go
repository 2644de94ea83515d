// Package docs chứa tài liệu OpenAPI phục vụ tại /swagger
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
        "Bearer": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/api/listings/": {
            "get": {"tags": ["listings"], "summary": "Danh sách listing",
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["listings"], "summary": "Tạo listing", "security": [{"Bearer": []}],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateListingRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}}
        },
        "/api/listings/search": {
            "get": {"tags": ["listings"], "summary": "Tìm listing gần đúng",
                "parameters": [
                    {"type": "string", "name": "q", "in": "query", "required": true},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}}
        },
        "/api/listings/{id}/": {
            "get": {"tags": ["listings"], "summary": "Chi tiết listing",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["listings"], "summary": "Cập nhật listing", "security": [{"Bearer": []}],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}},
            "patch": {"tags": ["listings"], "summary": "Cập nhật một phần listing", "security": [{"Bearer": []}],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}},
            "delete": {"tags": ["listings"], "summary": "Xóa listing", "security": [{"Bearer": []}],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}}}
        },
        "/api/bookings/": {
            "get": {"tags": ["bookings"], "summary": "Booking của user", "security": [{"Bearer": []}],
                "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["bookings"], "summary": "Tạo booking", "security": [{"Bearer": []}],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateBookingRequest"}}],
                "responses": {"201": {"description": "Created"}, "404": {"description": "Listing not found"}}}
        },
        "/api/reviews/": {
            "get": {"tags": ["reviews"], "summary": "Danh sách review",
                "parameters": [{"type": "integer", "name": "listing_id", "in": "query"}],
                "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["reviews"], "summary": "Tạo review", "security": [{"Bearer": []}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/api/payment/initiate/": {
            "post": {"tags": ["payment"], "summary": "Khởi tạo thanh toán Chapa",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.InitiatePaymentRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.InitiatePaymentResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }}
        },
        "/api/payment/verify/{payment_id}/": {
            "get": {"tags": ["payment"], "summary": "Xác minh thanh toán với Chapa",
                "parameters": [{"type": "integer", "name": "payment_id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.VerifyPaymentResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }}
        },
        "/api/payment/{payment_id}/": {
            "get": {"tags": ["payment"], "summary": "Xem bản ghi thanh toán của chính mình",
                "security": [{"Bearer": []}],
                "parameters": [{"type": "integer", "name": "payment_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"},
                    "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}}
        }
    },
    "definitions": {
        "dto.CreateListingRequest": {"type": "object", "required": ["title", "description", "price_per_night", "location"],
            "properties": {
                "title": {"type": "string"}, "description": {"type": "string"},
                "price_per_night": {"type": "number"}, "location": {"type": "string"},
                "amenities": {"type": "array", "items": {"type": "string"}}
            }},
        "dto.CreateBookingRequest": {"type": "object", "required": ["listing_id", "start_date", "end_date"],
            "properties": {
                "listing_id": {"type": "integer"},
                "start_date": {"type": "string", "example": "2025-05-01"},
                "end_date": {"type": "string", "example": "2025-05-04"}
            }},
        "dto.InitiatePaymentRequest": {"type": "object", "required": ["user_id", "booking_reference", "amount", "email"],
            "properties": {
                "user_id": {"type": "integer"}, "booking_reference": {"type": "string"},
                "amount": {"type": "number"}, "email": {"type": "string"}
            }},
        "dto.InitiatePaymentResponse": {"type": "object",
            "properties": {"checkout_url": {"type": "string"}, "payment_id": {"type": "integer"}}},
        "dto.VerifyPaymentResponse": {"type": "object",
            "properties": {"status": {"type": "string", "enum": ["Pending", "Completed", "Failed"]}}},
        "dto.ErrorResponse": {"type": "object", "properties": {"error": {}}}
    }
}`

// SwaggerInfo chứa thông tin mô tả API
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Travel App API",
	Description:      "Listings, bookings, reviews and Chapa payments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
