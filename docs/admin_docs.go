package docs

import "github.com/swaggo/swag"

const docTemplateAdmin = `{
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
                "tags": ["auth"],
                "summary": "Open an admin session",
                "parameters": [
                    {"description": "credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/admin.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/admin.LoginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/api/admin/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Close the current admin session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.successResponse"}}
                }
            }
        },
        "/api/admin/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Report whether the caller holds a live session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/admin.SessionResponse"}}
                }
            }
        },
        "/api/admin/settings/password": {
            "put": {
                "security": [{"AdminSession": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Change the signed-in admin's password",
                "parameters": [
                    {"description": "current and new password", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/admin.ChangePasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.messageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/api/admin/dashboard": {
            "get": {
                "security": [{"AdminSession": []}],
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Back-office landing page counters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.dashboardResponse"}}
                }
            }
        },
        "/api/admin/orders": {
            "get": {
                "security": [{"AdminSession": []}],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List orders",
                "parameters": [
                    {"type": "string", "description": "all | new | pending | delivered | cancelled", "name": "filter", "in": "query"},
                    {"type": "string", "description": "order number, email or customer name", "name": "search", "in": "query"},
                    {"type": "integer", "description": "page (from 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "page size (1..100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.ordersResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/api/admin/orders/reconcile": {
            "post": {
                "security": [{"AdminSession": []}],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Ask the payment gateway about stale pending orders",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.sweepResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/api/admin/orders/{id}": {
            "get": {
                "security": [{"AdminSession": []}],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Get an order with its items",
                "parameters": [
                    {"type": "string", "description": "order id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.orderResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"AdminSession": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Update fulfillment status and/or admin notes",
                "parameters": [
                    {"type": "string", "description": "order id", "name": "id", "in": "path", "required": true},
                    {"description": "changes", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/order.UpdateOrderRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.orderResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"AdminSession": []}],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Delete an order and its items",
                "parameters": [
                    {"type": "string", "description": "order id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.successResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/api/admin/products": {
            "get": {
                "security": [{"AdminSession": []}],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "List every product regardless of status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.adminProductsResponse"}}
                }
            },
            "post": {
                "security": [{"AdminSession": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Create a product",
                "parameters": [
                    {"description": "product", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/product.ProductRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/main.adminProductResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/api/admin/products/{id}": {
            "get": {
                "security": [{"AdminSession": []}],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Get a product with its children",
                "parameters": [
                    {"type": "string", "description": "product id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.adminProductResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"AdminSession": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Replace a product and its images, sizes, colors, collections and tags",
                "parameters": [
                    {"type": "string", "description": "product id", "name": "id", "in": "path", "required": true},
                    {"description": "product", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/product.ProductRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.adminProductResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"AdminSession": []}],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Delete a product",
                "parameters": [
                    {"type": "string", "description": "product id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.successResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/api/admin/collections": {
            "get": {
                "security": [{"AdminSession": []}],
                "produces": ["application/json"],
                "tags": ["collections"],
                "summary": "List collections, active or not",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.adminCollectionsResponse"}}
                }
            },
            "post": {
                "security": [{"AdminSession": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["collections"],
                "summary": "Create a collection",
                "parameters": [
                    {"description": "collection", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/product.CollectionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/main.adminCollectionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/api/admin/collections/{id}": {
            "get": {
                "security": [{"AdminSession": []}],
                "produces": ["application/json"],
                "tags": ["collections"],
                "summary": "Get a collection",
                "parameters": [
                    {"type": "string", "description": "collection id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.adminCollectionResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"AdminSession": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["collections"],
                "summary": "Replace a collection",
                "parameters": [
                    {"type": "string", "description": "collection id", "name": "id", "in": "path", "required": true},
                    {"description": "collection", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/product.CollectionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.adminCollectionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            },
            "patch": {
                "security": [{"AdminSession": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["collections"],
                "summary": "Toggle visibility or change the display order of a collection",
                "parameters": [
                    {"type": "string", "description": "collection id", "name": "id", "in": "path", "required": true},
                    {"description": "fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/product.CollectionPatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.adminCollectionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"AdminSession": []}],
                "produces": ["application/json"],
                "tags": ["collections"],
                "summary": "Delete a collection",
                "parameters": [
                    {"type": "string", "description": "collection id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.successResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/api/admin/tags": {
            "get": {
                "security": [{"AdminSession": []}],
                "produces": ["application/json"],
                "tags": ["tags"],
                "summary": "List tags",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.tagsResponse"}}
                }
            },
            "post": {
                "security": [{"AdminSession": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tags"],
                "summary": "Create a tag",
                "parameters": [
                    {"description": "tag", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/product.TagRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/main.tagResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/api/admin/tags/{id}": {
            "get": {
                "security": [{"AdminSession": []}],
                "produces": ["application/json"],
                "tags": ["tags"],
                "summary": "Get a tag",
                "parameters": [
                    {"type": "string", "description": "tag id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.tagResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"AdminSession": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tags"],
                "summary": "Replace a tag",
                "parameters": [
                    {"type": "string", "description": "tag id", "name": "id", "in": "path", "required": true},
                    {"description": "tag", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/product.TagRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.tagResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"AdminSession": []}],
                "produces": ["application/json"],
                "tags": ["tags"],
                "summary": "Delete a tag",
                "parameters": [
                    {"type": "string", "description": "tag id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.successResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/api/admin/currency": {
            "get": {
                "security": [{"AdminSession": []}],
                "produces": ["application/json"],
                "tags": ["currency"],
                "summary": "List exchange rates",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.currenciesResponse"}}
                }
            },
            "put": {
                "security": [{"AdminSession": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["currency"],
                "summary": "Edit exchange rates manually",
                "parameters": [
                    {"description": "rates by id", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/currency.UpdateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.currenciesResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/api/admin/currency/sync": {
            "post": {
                "security": [{"AdminSession": []}],
                "produces": ["application/json"],
                "tags": ["currency"],
                "summary": "Pull the latest rates from the FX source",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.syncResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/api/admin/upload": {
            "post": {
                "security": [{"AdminSession": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["upload"],
                "summary": "Upload a product image",
                "parameters": [
                    {"type": "file", "description": "image (JPEG, PNG, WebP, GIF; 5MB max)", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "target folder (default products)", "name": "folder", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.uploadResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"AdminSession": []}],
                "produces": ["application/json"],
                "tags": ["upload"],
                "summary": "Delete an uploaded object",
                "parameters": [
                    {"type": "string", "description": "object path returned by the upload", "name": "path", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.successResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
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
        "main.messageResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"}
            }
        },
        "admin.LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "remember_me": {"type": "boolean"}
            }
        },
        "admin.LoginResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "token": {"type": "string"},
                "expires_at": {"type": "string"}
            }
        },
        "admin.SessionResponse": {
            "type": "object",
            "properties": {
                "authenticated": {"type": "boolean"},
                "username": {"type": "string"}
            }
        },
        "admin.ChangePasswordRequest": {
            "type": "object",
            "properties": {
                "currentPassword": {"type": "string"},
                "newPassword": {"type": "string"}
            }
        },
        "main.dashboardResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "stats": {
                    "type": "object",
                    "properties": {
                        "totalProducts": {"type": "integer"},
                        "publishedProducts": {"type": "integer"},
                        "draftProducts": {"type": "integer"},
                        "totalCollections": {"type": "integer"},
                        "activeCollections": {"type": "integer"},
                        "lowStockProducts": {"type": "integer"},
                        "activePromotions": {"type": "integer"},
                        "featuredProducts": {"type": "integer"},
                        "newProducts": {"type": "integer"}
                    }
                },
                "orderStats": {
                    "type": "object",
                    "properties": {
                        "newOrders": {"type": "integer"},
                        "pendingOrders": {"type": "integer"},
                        "deliveredOrders": {"type": "integer"}
                    }
                },
                "recentOrders": {"type": "array", "items": {"type": "object"}},
                "lowStockProducts": {"type": "array", "items": {"type": "object"}}
            }
        },
        "order.Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer", "example": 1},
                "limit": {"type": "integer", "example": 20},
                "total": {"type": "integer", "example": 42},
                "totalPages": {"type": "integer", "example": 3}
            }
        },
        "order.UpdateOrderRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["new", "pending", "delivered", "cancelled"], "example": "delivered"},
                "admin_notes": {"type": "string", "example": "Shipped with Colissimo"}
            }
        },
        "main.ordersResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "orders": {"type": "array", "items": {"type": "object"}},
                "pagination": {"$ref": "#/definitions/order.Pagination"}
            }
        },
        "main.orderResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "order": {"type": "object"}
            }
        },
        "main.sweepResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "checked": {"type": "integer"},
                "updated": {"type": "integer"},
                "failed": {"type": "integer"}
            }
        },
        "product.ProductRequest": {
            "type": "object",
            "required": ["name_en", "name_fr", "price"],
            "properties": {
                "sku": {"type": "string", "example": "CAF-001"},
                "name_en": {"type": "string", "example": "Imperial Caftan"},
                "name_fr": {"type": "string", "example": "Caftan Impérial"},
                "description_en": {"type": "string"},
                "description_fr": {"type": "string"},
                "price": {"type": "string", "example": "1200.00"},
                "original_price": {"type": "string"},
                "is_promotion": {"type": "boolean"},
                "promotion_start_date": {"type": "string", "example": "2026-10-01"},
                "promotion_end_date": {"type": "string", "example": "2026-10-31"},
                "stock_quantity": {"type": "integer"},
                "low_stock_threshold": {"type": "integer"},
                "status": {"type": "string", "enum": ["draft", "published", "archived", "out_of_season"]},
                "is_featured": {"type": "boolean"},
                "is_new": {"type": "boolean"},
                "display_order": {"type": "integer"},
                "images": {"type": "array", "items": {"type": "object"}},
                "sizes": {"type": "array", "items": {"type": "object"}},
                "colors": {"type": "array", "items": {"type": "object"}},
                "collections": {"type": "array", "items": {"type": "string"}},
                "tags": {"type": "array", "items": {"type": "string"}}
            }
        },
        "main.adminProductsResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "products": {"type": "array", "items": {"type": "object"}}
            }
        },
        "main.adminProductResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "product": {"type": "object"}
            }
        },
        "product.CollectionRequest": {
            "type": "object",
            "required": ["name_en", "name_fr"],
            "properties": {
                "slug": {"type": "string", "example": "ramadan-2026"},
                "name_en": {"type": "string", "example": "Ramadan 2026"},
                "name_fr": {"type": "string", "example": "Ramadan 2026"},
                "description_en": {"type": "string"},
                "description_fr": {"type": "string"},
                "image_url": {"type": "string"},
                "display_order": {"type": "integer"},
                "is_active": {"type": "boolean"}
            }
        },
        "product.CollectionPatch": {
            "type": "object",
            "properties": {
                "is_active": {"type": "boolean"},
                "display_order": {"type": "integer"}
            }
        },
        "main.adminCollectionsResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "collections": {"type": "array", "items": {"type": "object"}}
            }
        },
        "main.adminCollectionResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "collection": {"type": "object"}
            }
        },
        "product.TagRequest": {
            "type": "object",
            "required": ["name_en", "name_fr"],
            "properties": {
                "slug": {"type": "string", "example": "silk"},
                "name_en": {"type": "string", "example": "Silk"},
                "name_fr": {"type": "string", "example": "Soie"}
            }
        },
        "main.tagsResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "tags": {"type": "array", "items": {"type": "object"}}
            }
        },
        "main.tagResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "tag": {"type": "object"}
            }
        },
        "currency.Rate": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "currency_code": {"type": "string", "example": "USD"},
                "rate": {"type": "number", "example": 1.08},
                "symbol": {"type": "string", "example": "$"},
                "updated_at": {"type": "string"}
            }
        },
        "currency.UpdateRequest": {
            "type": "object",
            "required": ["currencies"],
            "properties": {
                "currencies": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "required": ["id", "rate"],
                        "properties": {
                            "id": {"type": "string"},
                            "rate": {"type": "number", "example": 1.1}
                        }
                    }
                }
            }
        },
        "main.currenciesResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "currencies": {"type": "array", "items": {"$ref": "#/definitions/currency.Rate"}}
            }
        },
        "main.syncResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string", "example": "Rates updated successfully"},
                "currencies": {"type": "array", "items": {"$ref": "#/definitions/currency.Rate"}},
                "source": {"type": "string", "example": "exchangerate-api.com"},
                "date": {"type": "string", "example": "2026-10-19"}
            }
        },
        "main.uploadResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "url": {"type": "string"},
                "path": {"type": "string", "example": "products/1760870000000-a1b2c3.jpg"}
            }
        }
    },
    "securityDefinitions": {
        "AdminSession": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// AdminInfo holds exported Swagger Info so clients can modify it
var AdminInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Boutique Admin API",
	Description:      "Back-office API. Every route except login, logout and session needs the admin_session cookie or a Bearer token.",
	InfoInstanceName: "admin",
	SwaggerTemplate:  docTemplateAdmin,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(AdminInfo.InstanceName(), AdminInfo)
}
