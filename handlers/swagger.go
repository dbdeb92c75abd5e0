package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers the API documentation endpoints.
// - GET /swagger/index.html  -> Swagger UI page loading the document below
// - GET /swagger/doc.json    -> OpenAPI 3 document
func RegisterSwagger(rg gin.IRouter) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>nodebucket API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "nodebucket", "version": "v1.0.0" },
  "components": {
    "schemas": {
      "Task": { "type": "object", "properties": { "id": {"type":"string"}, "text": {"type":"string"} } },
      "Employee": { "type": "object", "properties": {
        "employeeId": {"type":"string"}, "firstName": {"type":"string"}, "lastName": {"type":"string"},
        "todo": {"type":"array","items":{"$ref":"#/components/schemas/Task"}},
        "done": {"type":"array","items":{"$ref":"#/components/schemas/Task"}} } },
      "Envelope": { "type": "object", "properties": {
        "httpCode": {"type":"integer"}, "message": {"type":"string"}, "data": {}, "timestamp": {"type":"string"} } }
    }
  },
  "paths": {
    "/api/employees": {
      "get": { "summary": "List employees", "responses": { "200": { "description": "employees" }, "501": { "description": "store error" } } },
      "post": { "summary": "Create employee", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"employeeId":{"type":"string"},"firstName":{"type":"string"},"lastName":{"type":"string"}}}}}}, "responses": { "201": { "description": "created" }, "400": { "description": "invalid" }, "501": { "description": "store error" } } }
    },
    "/api/employees/{employeeId}": {
      "get": { "summary": "Find employee by id", "responses": { "200": { "description": "employee" }, "400": { "description": "invalid id" }, "404": { "description": "not found" } } },
      "patch": { "summary": "Update employee name fields", "responses": { "200": { "description": "employee" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete employee", "responses": { "200": { "description": "deleted" }, "404": { "description": "not found" } } }
    },
    "/api/employees/{employeeId}/tasks": {
      "get": { "summary": "Find all tasks", "responses": { "200": { "description": "employeeId, todo and done" }, "400": { "description": "invalid id" }, "404": { "description": "not found" }, "501": { "description": "store error" } } },
      "post": { "summary": "Create task", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"text":{"type":"string"}}}}}}, "responses": { "200": { "description": "updated employee" }, "400": { "description": "invalid" }, "501": { "description": "store error" } } },
      "put": { "summary": "Replace todo and done lists", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"todo":{"type":"array","items":{"$ref":"#/components/schemas/Task"}},"done":{"type":"array","items":{"$ref":"#/components/schemas/Task"}}}}}}}, "responses": { "200": { "description": "updated employee" }, "400": { "description": "invalid" }, "501": { "description": "store error" } } }
    },
    "/api/employees/{employeeId}/tasks/{taskId}": {
      "delete": { "summary": "Delete task", "responses": { "200": { "description": "updated employee" }, "404": { "description": "employee or task not found" }, "501": { "description": "store error" } } }
    },
    "/api/session": {
      "post": { "summary": "Sign in with an employee id (sets session_user cookie)", "responses": { "200": { "description": "employee" }, "404": { "description": "unknown employee" } } },
      "get": { "summary": "Current session", "responses": { "200": { "description": "employee id" }, "401": { "description": "no session" } } },
      "delete": { "summary": "Sign out", "responses": { "200": { "description": "cookies cleared" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
