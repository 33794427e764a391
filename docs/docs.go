// Package docs holds the OpenAPI document served under /swagger.
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
        "/cities": {
            "get": {
                "description": "Returns a mapping from each city to the number of customers in it.",
                "produces": ["application/json"],
                "tags": ["Cities"],
                "summary": "Count customers per city",
                "responses": {
                    "200": {
                        "description": "Customer count per city",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {"type": "integer"}
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {"$ref": "#/definitions/dto.ErrorResponse"}
                    }
                }
            }
        },
        "/customers": {
            "get": {
                "description": "Filters customers by case-insensitive substring on first name, last name and city, then returns one page of the matches.",
                "produces": ["application/json"],
                "tags": ["Customers"],
                "summary": "List customers",
                "parameters": [
                    {"type": "string", "description": "Substring of the first name", "name": "first_name", "in": "query"},
                    {"type": "string", "description": "Substring of the last name", "name": "last_name", "in": "query"},
                    {"type": "string", "description": "Substring of the city", "name": "city", "in": "query"},
                    {"type": "integer", "default": 1, "description": "1-based page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "description": "Page size", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "Matching customers",
                        "schema": {"$ref": "#/definitions/dto.ListCustomersResponse"}
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {"$ref": "#/definitions/dto.ErrorResponse"}
                    }
                }
            },
            "post": {
                "description": "Adds a customer. All fields are required, the id must be unused, and city and company must already belong to some existing customer.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Customers"],
                "summary": "Add a customer",
                "parameters": [
                    {
                        "description": "Customer record",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.CreateCustomerRequest"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Customer added",
                        "schema": {"$ref": "#/definitions/dto.MessageResponse"}
                    },
                    "400": {
                        "description": "Missing fields, duplicate id, or unknown city or company",
                        "schema": {"$ref": "#/definitions/dto.ErrorResponse"}
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {"$ref": "#/definitions/dto.ErrorResponse"}
                    }
                }
            }
        },
        "/customers/{customerID}": {
            "get": {
                "description": "Retrieves a single customer by id.",
                "produces": ["application/json"],
                "tags": ["Customers"],
                "summary": "Retrieve customer details",
                "parameters": [
                    {"type": "integer", "description": "Customer ID", "name": "customerID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "Customer details retrieved",
                        "schema": {"$ref": "#/definitions/dto.CustomerResponse"}
                    },
                    "404": {
                        "description": "Customer not found",
                        "schema": {"$ref": "#/definitions/dto.ErrorResponse"}
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {"$ref": "#/definitions/dto.ErrorResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "dto.CreateCustomerRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 2},
                "first_name": {"type": "string", "example": "Bo"},
                "last_name": {"type": "string", "example": "Kim"},
                "city": {"type": "string", "example": "Oslo"},
                "company": {"type": "string", "example": "Acme"}
            }
        },
        "dto.CustomerResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "city": {"type": "string"},
                "company": {"type": "string"}
            }
        },
        "dto.ListCustomersResponse": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "data": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/dto.CustomerResponse"}
                }
            }
        },
        "dto.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Customer added successfully"}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Customer not found"},
                "field": {"type": "string"}
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
	Title:            "Customer Directory API",
	Description:      "Read-mostly customer directory held in memory, with filtered listing, lookup by id, per-city counts and guarded inserts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
