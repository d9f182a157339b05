// Package testutil provides OpenAPI fixtures shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// UsersV3 is an OpenAPI 3.0 document exercising every lookup the index does.
const UsersV3 = `openapi: 3.0.3
info:
  title: Users API
  version: 1.0.0
paths:
  /test/header/application/json/and/responseBody/string:
    get:
      responses:
        "200":
          description: a string body
          content:
            application/json:
              schema:
                type: string
  /users:
    post:
      responses:
        "201":
          description: created
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/User'
  /users/{id}:
    get:
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: string
      responses:
        "200":
          description: one user
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/User'
        default:
          description: error
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Error'
    delete:
      responses:
        "204":
          description: deleted
  /users/active:
    get:
      responses:
        "200":
          description: active users
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: '#/components/schemas/User'
  /recreate/bug:
    get:
      responses:
        "200":
          description: literal path
          content:
            application/json:
              schema:
                type: object
                required: [fixed]
                properties:
                  fixed:
                    type: boolean
  /ranged:
    get:
      responses:
        2XX:
          description: any success
          content:
            application/json:
              schema:
                type: string
  /text:
    get:
      responses:
        "200":
          description: plain text
          content:
            text/plain:
              schema:
                type: string
  /wildcard:
    get:
      responses:
        "200":
          description: anything
          content:
            "*/*":
              schema:
                type: string
  /images:
    get:
      responses:
        "200":
          description: any image
          content:
            image/*:
              schema:
                type: string
  /multi:
    get:
      responses:
        "200":
          description: two media types
          content:
            application/xml:
              schema:
                type: string
            text/csv:
              schema:
                type: string
  /files/{name}.json:
    get:
      responses:
        "200":
          description: a file
          content:
            application/json:
              schema:
                type: object
  /ambiguous/{a}/fixed:
    get:
      responses:
        "200":
          description: left
  /ambiguous/fixed/{b}:
    get:
      responses:
        "200":
          description: right
  /nullable:
    get:
      responses:
        "200":
          description: nullable body
          content:
            application/json:
              schema:
                type: object
                nullable: true
components:
  schemas:
    User:
      type: object
      required: [id, name]
      properties:
        id:
          type: integer
          minimum: 1
        name:
          type: string
        email:
          type: string
    Error:
      type: object
      required: [message]
      properties:
        message:
          type: string
`

// UsersV2 mirrors part of UsersV3 as a Swagger 2.0 document with a basePath.
const UsersV2 = `swagger: "2.0"
info:
  title: Users API
  version: 1.0.0
basePath: /v2
produces:
  - application/json
paths:
  /users/{id}:
    get:
      parameters:
        - name: id
          in: path
          required: true
          type: string
      responses:
        "200":
          description: one user
          schema:
            $ref: '#/definitions/User'
    delete:
      responses:
        "204":
          description: deleted
  /test/header/application/json/and/responseBody/string:
    get:
      responses:
        "200":
          description: a string body
          schema:
            type: string
definitions:
  User:
    type: object
    required: [id, name]
    properties:
      id:
        type: integer
        minimum: 1
      name:
        type: string
`

// ServersV3 declares server URLs with base paths and variables.
const ServersV3 = `openapi: 3.0.3
info:
  title: Servers API
  version: 1.0.0
servers:
  - url: https://api.example.com/v1
  - url: "{scheme}://api.example.com/{base}"
    variables:
      scheme:
        default: https
      base:
        default: internal/v2
paths:
  /things:
    get:
      responses:
        "200":
          description: things
          content:
            application/json:
              schema:
                type: array
                items:
                  type: string
`

// WriteSpec writes content to a file named name in a temporary directory
// and returns its path.
func WriteSpec(t testing.TB, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write fixture %s: %v", name, err)
	}

	return path
}
