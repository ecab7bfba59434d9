package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Plannora Planning API",
        "description": "Weekly schedule generation and constraint validation",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Plannings", "description": "Weekly planning generation, validation and persistence"},
        {"name": "Constraints", "description": "Per-team company constraint calendar"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unavailable"}
                }
            }
        },
        "/plannings/generate": {
            "post": {
                "tags": ["Plannings"],
                "summary": "Generate a weekly planning",
                "description": "Validates the relayed model proposal when present, otherwise generates a deterministic fallback schedule. Constraint findings are returned as non-blocking warnings.",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GeneratePlanningRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failure or invalid week", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/plannings/validate": {
            "post": {
                "tags": ["Plannings"],
                "summary": "Validate a weekly schedule",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ValidatePlanningRequest"}}
                ],
                "responses": {
                    "200": {"description": "Warning report", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failure or invalid week", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/plannings": {
            "post": {
                "tags": ["Plannings"],
                "summary": "Save an approved weekly planning",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SavePlanningRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failure or invalid week", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/plannings/{teamId}": {
            "get": {
                "tags": ["Plannings"],
                "summary": "Get the stored planning of a team week",
                "parameters": [
                    {"name": "teamId", "in": "path", "required": true, "type": "string"},
                    {"name": "year", "in": "query", "required": true, "type": "integer"},
                    {"name": "week", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No stored planning", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/plannings/{teamId}/weeks": {
            "get": {
                "tags": ["Plannings"],
                "summary": "List stored plannings of a team",
                "parameters": [
                    {"name": "teamId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/plannings/{teamId}/export": {
            "get": {
                "tags": ["Plannings"],
                "summary": "Export the stored planning of a team week",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "teamId", "in": "path", "required": true, "type": "string"},
                    {"name": "year", "in": "query", "required": true, "type": "integer"},
                    {"name": "week", "in": "query", "required": true, "type": "integer"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "Rendered document"},
                    "404": {"description": "No stored planning", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Exports disabled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teams/{teamId}/constraints": {
            "get": {
                "tags": ["Constraints"],
                "summary": "Get the company constraints of a team",
                "parameters": [
                    {"name": "teamId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No constraints configured", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Constraints"],
                "summary": "Store the company constraints of a team",
                "parameters": [
                    {"name": "teamId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CompanyConstraints"}}
                ],
                "responses": {
                    "204": {"description": "Stored"},
                    "400": {"description": "Malformed constraints", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CompanyConstraints": {
            "type": "object",
            "properties": {
                "openingDays": {"type": "array", "items": {"type": "string"}},
                "openingHours": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "day": {"type": "string"},
                            "hours": {"type": "array", "items": {"type": "string"}}
                        }
                    }
                },
                "minStaffSimultaneously": {"type": "integer"},
                "minHoursPerDay": {"type": "integer"},
                "maxHoursPerDay": {"type": "integer"},
                "lunchBreakDuration": {"type": "integer"},
                "mandatoryLunchBreak": {"type": "boolean"},
                "roleConstraints": {"type": "array", "items": {"type": "object"}}
            }
        },
        "WeeklySchedule": {
            "type": "object",
            "description": "Day name -> employee name -> HH:MM-HH:MM slot tokens",
            "additionalProperties": {
                "type": "object",
                "additionalProperties": {
                    "type": "array",
                    "items": {"type": "string"}
                }
            }
        },
        "GeneratePlanningRequest": {
            "type": "object",
            "properties": {
                "teamId": {"type": "string"},
                "year": {"type": "integer", "minimum": 2020, "maximum": 2030},
                "weekNumber": {"type": "integer", "minimum": 1, "maximum": 53},
                "proposal": {"$ref": "#/definitions/WeeklySchedule"}
            },
            "required": ["teamId", "year", "weekNumber"]
        },
        "ValidatePlanningRequest": {
            "type": "object",
            "properties": {
                "teamId": {"type": "string"},
                "year": {"type": "integer", "minimum": 2020, "maximum": 2030},
                "weekNumber": {"type": "integer", "minimum": 1, "maximum": 53},
                "schedule": {"$ref": "#/definitions/WeeklySchedule"}
            },
            "required": ["teamId", "year", "weekNumber", "schedule"]
        },
        "SavePlanningRequest": {
            "type": "object",
            "properties": {
                "teamId": {"type": "string"},
                "year": {"type": "integer", "minimum": 2020, "maximum": 2030},
                "weekNumber": {"type": "integer", "minimum": 1, "maximum": 53},
                "source": {"type": "string", "enum": ["model", "fallback", "manual"]},
                "schedule": {"$ref": "#/definitions/WeeklySchedule"}
            },
            "required": ["teamId", "year", "weekNumber", "schedule"]
        },
        "Warning": {
            "type": "object",
            "properties": {
                "severity": {"type": "string"},
                "employee": {"type": "string"},
                "day": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
