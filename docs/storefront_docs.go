// Package docs holds the OpenAPI documents served under /swagger by both
// services. Regenerate with:
//
//	swag init -g cmd/storefront-service/main.go --instanceName storefront -o docs
//	swag init -g cmd/admin-service/main.go --instanceName admin -o docs
package docs

import "github.com/swaggo/swag"

const docTemplateStorefront = `{
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
        "/api/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List published products",
                "parameters": [
                    {"type": "string", "description": "collection slug", "name": "collection", "in": "query"},
                    {"type": "boolean", "description": "only featured", "name": "featured", "in": "query"},
                    {"type": "boolean", "description": "only new arrivals", "name": "new", "in": "query"},
                    {"type": "integer", "description": "max results (1..100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.productsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/api/products/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Get a published product by id or short-id slug",
                "parameters": [
                    {"type": "string", "description": "uuid or shortid-slug", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.productResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/api/collections": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List active collections",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.collectionsResponse"}}
                }
            }
        },
        "/api/cart/quote": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Merge cart lines and compute totals",
                "parameters": [
                    {"description": "cart lines", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/checkout.QuoteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/checkout.QuoteResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/api/checkout": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Create an order and its hosted payment session",
                "parameters": [
                    {"description": "cart, customer and shipping", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/checkout.Request"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/checkout.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/api/checkout/order": {
            "get": {
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Minimal order info for the success page",
                "parameters": [
                    {"type": "string", "description": "order id", "name": "order", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.orderSummaryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/api/checkout/webhook": {
            "get": {
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Webhook liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.webhookPing"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Payment gateway notification",
                "parameters": [
                    {"description": "gateway event", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/order.WebhookEvent"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.successResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "httpx.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": false},
                "error": {"type": "string", "example": "Order not found"},
                "details": {"type": "string"}
            }
        },
        "main.successResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}}
        },
        "main.webhookPing": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"},
                "message": {"type": "string"}
            }
        },
        "main.productsResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "products": {"type": "array", "items": {"$ref": "#/definitions/product.PublicProduct"}}
            }
        },
        "main.productResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "product": {"$ref": "#/definitions/product.PublicProduct"}
            }
        },
        "main.collectionsResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "collections": {"type": "array", "items": {"$ref": "#/definitions/product.PublicCollection"}}
            }
        },
        "main.orderSummaryResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "order": {"$ref": "#/definitions/order.OrderSummary"}
            }
        },
        "product.PublicProduct": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "sku": {"type": "string"},
                "name": {"type": "string"},
                "name_en": {"type": "string"},
                "name_fr": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "string", "example": "1200"},
                "originalPrice": {"type": "string"},
                "isPromotion": {"type": "boolean"},
                "promotionActive": {"type": "boolean"},
                "promotionLabel": {"type": "string"},
                "stockQuantity": {"type": "integer"},
                "lowStock": {"type": "boolean"},
                "isFeatured": {"type": "boolean"},
                "isNew": {"type": "boolean"},
                "slug": {"type": "string", "example": "93ee8be9-imperial-caftan"},
                "images": {"type": "array", "items": {"type": "string"}},
                "collections": {"type": "array", "items": {"type": "string"}},
                "tags": {"type": "array", "items": {"type": "string"}}
            }
        },
        "product.PublicCollection": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "slug": {"type": "string", "example": "ramadan"},
                "name": {"type": "string"},
                "name_en": {"type": "string"},
                "name_fr": {"type": "string"},
                "description": {"type": "string"},
                "image": {"type": "string"}
            }
        },
        "cart.Line": {
            "type": "object",
            "properties": {
                "product_id": {"type": "string", "example": "93ee8be9-0c1f-4f4e-9a53-3f4a5e1b2c3d"},
                "product_name_en": {"type": "string", "example": "Imperial Caftan Royale"},
                "product_name_fr": {"type": "string"},
                "product_sku": {"type": "string"},
                "product_image_url": {"type": "string"},
                "unit_price": {"type": "number", "example": 100},
                "quantity": {"type": "integer", "example": 2},
                "size": {"type": "string", "example": "M"},
                "color": {"type": "string", "example": "Emerald"}
            }
        },
        "checkout.QuoteRequest": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/cart.Line"}}
            }
        },
        "checkout.QuoteResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/cart.Line"}},
                "total_items": {"type": "integer"},
                "subtotal": {"type": "string"}
            }
        },
        "checkout.Customer": {
            "type": "object",
            "properties": {
                "first_name": {"type": "string", "example": "Amina"},
                "last_name": {"type": "string", "example": "Benali"},
                "email": {"type": "string", "example": "amina@example.com"},
                "phone": {"type": "string", "example": "+33600000000"}
            }
        },
        "checkout.Shipping": {
            "type": "object",
            "properties": {
                "address": {"type": "string", "example": "12 rue de la Paix"},
                "city": {"type": "string", "example": "Paris"},
                "postal_code": {"type": "string", "example": "75002"},
                "country": {"type": "string", "example": "France"}
            }
        },
        "checkout.Request": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/cart.Line"}},
                "customer": {"$ref": "#/definitions/checkout.Customer"},
                "shipping": {"$ref": "#/definitions/checkout.Shipping"},
                "customer_notes": {"type": "string"}
            }
        },
        "checkout.OrderRef": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "order_number": {"type": "string", "example": "ORD-20261019-1A2B3C4D"},
                "total_amount": {"type": "string", "example": "250.00"}
            }
        },
        "checkout.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "order": {"$ref": "#/definitions/checkout.OrderRef"},
                "checkout_url": {"type": "string", "example": "https://pay.sumup.com/b2c/Qchk_123"},
                "message": {"type": "string"}
            }
        },
        "order.OrderSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "order_number": {"type": "string", "example": "ORD-20261019-1A2B3C4D"},
                "total_amount": {"type": "string", "example": "250.00"},
                "currency": {"type": "string", "example": "EUR"},
                "payment_status": {"type": "string", "example": "paid"}
            }
        },
        "order.WebhookEvent": {
            "type": "object",
            "properties": {
                "event_type": {"type": "string", "example": "CHECKOUT_COMPLETED"},
                "status": {"type": "string", "example": "PAID"},
                "checkout_reference": {"type": "string", "example": "ORD-20261019-1A2B3C4D"},
                "transaction_id": {"type": "string", "example": "tx1"}
            }
        }
    }
}`

// StorefrontInfo holds exported Swagger Info so clients can modify it
var StorefrontInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Boutique Storefront API",
	Description:      "Public catalog, cart totals, checkout and payment notifications.",
	InfoInstanceName: "storefront",
	SwaggerTemplate:  docTemplateStorefront,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(StorefrontInfo.InstanceName(), StorefrontInfo)
}
