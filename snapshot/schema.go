package snapshot

import "github.com/xeipuuv/gojsonschema"

const snapshotSchemaJSON = `{
  "type": "object",
  "required": ["projects", "issues", "members", "pullRequests", "commits"],
  "definitions": {
    "nullableString": {"type": ["string", "null"]},
    "timestamp": {"type": ["string", "null"]},
    "ref": {
      "type": "object",
      "required": ["name"],
      "properties": {"name": {"type": "string"}}
    },
    "login": {
      "type": ["object", "null"],
      "required": ["login"],
      "properties": {"login": {"type": "string"}}
    }
  },
  "properties": {
    "projects": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["number", "name", "issues"],
        "properties": {
          "number": {"type": "integer"},
          "name": {"type": "string"},
          "issues": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["number", "repository"],
              "properties": {
                "number": {"type": "integer"},
                "repository": {"type": "string"},
                "status": {"$ref": "#/definitions/nullableString"}
              }
            }
          }
        }
      }
    },
    "issues": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["number", "repository", "state"],
        "properties": {
          "number": {"type": "integer"},
          "title": {"$ref": "#/definitions/nullableString"},
          "repository": {"$ref": "#/definitions/ref"},
          "state": {"type": "string"},
          "body": {"$ref": "#/definitions/nullableString"},
          "assignee": {"$ref": "#/definitions/login"},
          "labels": {"type": ["array", "null"], "items": {"type": "string"}},
          "createdAt": {"$ref": "#/definitions/timestamp"},
          "updatedAt": {"$ref": "#/definitions/timestamp"},
          "closedAt": {"$ref": "#/definitions/timestamp"}
        }
      }
    },
    "members": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["login"],
        "properties": {
          "login": {"type": "string"},
          "name": {"$ref": "#/definitions/nullableString"}
        }
      }
    },
    "pullRequests": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["repository"],
        "properties": {
          "number": {"type": "integer"},
          "repository": {"$ref": "#/definitions/ref"},
          "author": {"$ref": "#/definitions/login"},
          "state": {"$ref": "#/definitions/nullableString"},
          "createdAt": {"$ref": "#/definitions/timestamp"},
          "mergedAt": {"$ref": "#/definitions/timestamp"}
        }
      }
    },
    "commits": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["repository"],
        "properties": {
          "oid": {"$ref": "#/definitions/nullableString"},
          "repository": {"$ref": "#/definitions/ref"},
          "author": {"$ref": "#/definitions/login"},
          "committedDate": {"$ref": "#/definitions/timestamp"}
        }
      }
    },
    "repositories": {
      "type": "array",
      "items": {"$ref": "#/definitions/ref"}
    }
  }
}`

var snapshotSchemaLoader = gojsonschema.NewStringLoader(snapshotSchemaJSON)
