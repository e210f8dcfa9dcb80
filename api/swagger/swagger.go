package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Schedule Engine API",
        "description": "Class session assignment over a weekly time grid.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {
            "name": "Schedule",
            "description": "Grids, selection checks and teacher classification"
        },
        {
            "name": "Assignment Flows",
            "description": "Step-by-step session assignment"
        },
        {
            "name": "UI Hints",
            "description": "One-time UI hint flags"
        },
        {
            "name": "Observability",
            "description": "Metrics and health"
        }
    ],
    "paths": {
        "/schedule/grid": {
            "get": {
                "tags": [
                    "Schedule"
                ],
                "summary": "Schedule grid of a teacher or a group",
                "parameters": [
                    {
                        "name": "teacherId",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "groupId",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid scope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "502": {
                        "description": "Backend unavailable",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/schedule/selection/validate": {
            "post": {
                "tags": [
                    "Schedule"
                ],
                "summary": "Validate a multi-cell selection",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ValidateSelectionRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/schedule/teachers/classify": {
            "post": {
                "tags": [
                    "Schedule"
                ],
                "summary": "Classify eligible teachers",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ClassifyTeachersRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/schedule/assignments/validate": {
            "post": {
                "tags": [
                    "Schedule"
                ],
                "summary": "Authoritative validation of a proposed session",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/AssignmentValidationRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/schedule/sessions/{id}": {
            "delete": {
                "tags": [
                    "Schedule"
                ],
                "summary": "Delete a class session",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/schedule/cache": {
            "delete": {
                "tags": [
                    "Schedule"
                ],
                "summary": "Drop cached reference snapshots",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/schedule/flows": {
            "post": {
                "tags": [
                    "Assignment Flows"
                ],
                "summary": "Start an assignment flow",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/StartFlowRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/schedule/flows/{id}": {
            "get": {
                "tags": [
                    "Assignment Flows"
                ],
                "summary": "Assignment flow state",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown or expired flow",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Assignment Flows"
                ],
                "summary": "Discard an assignment flow",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/schedule/flows/{id}/grid": {
            "get": {
                "tags": [
                    "Assignment Flows"
                ],
                "summary": "Grid with the current selection",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/schedule/flows/{id}/cells": {
            "post": {
                "tags": [
                    "Assignment Flows"
                ],
                "summary": "Toggle one cell",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CellRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Assignment Flows"
                ],
                "summary": "Clear the selection",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/schedule/flows/{id}/confirm": {
            "post": {
                "tags": [
                    "Assignment Flows"
                ],
                "summary": "Confirm the selection",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "422": {
                        "description": "Selection cannot form one session",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/schedule/flows/{id}/course": {
            "put": {
                "tags": [
                    "Assignment Flows"
                ],
                "summary": "Pick the course",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SelectCourseRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/schedule/flows/{id}/session-type": {
            "put": {
                "tags": [
                    "Assignment Flows"
                ],
                "summary": "Pick theory or practice",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SelectSessionTypeRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/schedule/flows/{id}/teachers": {
            "get": {
                "tags": [
                    "Assignment Flows"
                ],
                "summary": "Classify teachers for the flow",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Superseded by a newer request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/schedule/flows/{id}/teacher": {
            "put": {
                "tags": [
                    "Assignment Flows"
                ],
                "summary": "Pick a teacher",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SelectTeacherRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/schedule/flows/{id}/spaces": {
            "get": {
                "tags": [
                    "Assignment Flows"
                ],
                "summary": "Free learning spaces",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/schedule/flows/{id}/space": {
            "put": {
                "tags": [
                    "Assignment Flows"
                ],
                "summary": "Pick a learning space",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SelectSpaceRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/schedule/flows/{id}/validate": {
            "post": {
                "tags": [
                    "Assignment Flows"
                ],
                "summary": "Validate the flow's assignment",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/schedule/flows/{id}/submit": {
            "post": {
                "tags": [
                    "Assignment Flows"
                ],
                "summary": "Save the session",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": false,
                        "schema": {
                            "$ref": "#/definitions/SubmitSessionRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "422": {
                        "description": "Blocking validation errors",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/schedule/flows/{id}/sessions/{sessionId}": {
            "delete": {
                "tags": [
                    "Assignment Flows"
                ],
                "summary": "Delete a session and reload the grid",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "sessionId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/ui-hints/{key}": {
            "get": {
                "tags": [
                    "UI Hints"
                ],
                "summary": "Whether a hint was dismissed",
                "parameters": [
                    {
                        "name": "key",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "subject",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "UI Hints"
                ],
                "summary": "Record or clear a hint dismissal",
                "parameters": [
                    {
                        "name": "key",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/UIHintRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/metrics/summary": {
            "get": {
                "tags": [
                    "Observability"
                ],
                "summary": "Aggregated engine counters",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "CellRequest": {
            "type": "object",
            "required": [
                "day",
                "hourId"
            ],
            "properties": {
                "day": {
                    "type": "string",
                    "enum": [
                        "MONDAY",
                        "TUESDAY",
                        "WEDNESDAY",
                        "THURSDAY",
                        "FRIDAY",
                        "SATURDAY",
                        "SUNDAY"
                    ]
                },
                "hourId": {
                    "type": "string"
                }
            }
        },
        "ValidateSelectionRequest": {
            "type": "object",
            "required": [
                "cells"
            ],
            "properties": {
                "teacherId": {
                    "type": "string"
                },
                "groupId": {
                    "type": "string"
                },
                "cells": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/CellRequest"
                    }
                }
            }
        },
        "ClassifyTeachersRequest": {
            "type": "object",
            "required": [
                "courseId",
                "day",
                "hourIds"
            ],
            "properties": {
                "courseId": {
                    "type": "string"
                },
                "day": {
                    "type": "string",
                    "enum": [
                        "MONDAY",
                        "TUESDAY",
                        "WEDNESDAY",
                        "THURSDAY",
                        "FRIDAY",
                        "SATURDAY",
                        "SUNDAY"
                    ]
                },
                "hourIds": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "excludeSessionId": {
                    "type": "string"
                }
            }
        },
        "AssignmentValidationRequest": {
            "type": "object",
            "required": [
                "courseId",
                "teacherId",
                "spaceId",
                "groupId",
                "day",
                "hourIds",
                "sessionType"
            ],
            "properties": {
                "courseId": {
                    "type": "string"
                },
                "teacherId": {
                    "type": "string"
                },
                "spaceId": {
                    "type": "string"
                },
                "groupId": {
                    "type": "string"
                },
                "day": {
                    "type": "string",
                    "enum": [
                        "MONDAY",
                        "TUESDAY",
                        "WEDNESDAY",
                        "THURSDAY",
                        "FRIDAY",
                        "SATURDAY",
                        "SUNDAY"
                    ]
                },
                "hourIds": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "sessionType": {
                    "type": "string",
                    "enum": [
                        "THEORY",
                        "PRACTICE"
                    ]
                },
                "excludeSessionId": {
                    "type": "string"
                }
            }
        },
        "StartFlowRequest": {
            "type": "object",
            "properties": {
                "teacherId": {
                    "type": "string"
                },
                "groupId": {
                    "type": "string"
                },
                "editSessionId": {
                    "type": "string"
                }
            }
        },
        "SelectCourseRequest": {
            "type": "object",
            "required": [
                "courseId"
            ],
            "properties": {
                "courseId": {
                    "type": "string"
                },
                "groupId": {
                    "type": "string"
                }
            }
        },
        "SelectSessionTypeRequest": {
            "type": "object",
            "required": [
                "sessionType"
            ],
            "properties": {
                "sessionType": {
                    "type": "string",
                    "enum": [
                        "THEORY",
                        "PRACTICE"
                    ]
                }
            }
        },
        "SelectTeacherRequest": {
            "type": "object",
            "required": [
                "teacherId"
            ],
            "properties": {
                "teacherId": {
                    "type": "string"
                }
            }
        },
        "SelectSpaceRequest": {
            "type": "object",
            "required": [
                "spaceId"
            ],
            "properties": {
                "spaceId": {
                    "type": "string"
                }
            }
        },
        "SubmitSessionRequest": {
            "type": "object",
            "properties": {
                "notes": {
                    "type": "string",
                    "maxLength": 500
                }
            }
        },
        "UIHintRequest": {
            "type": "object",
            "required": [
                "subject"
            ],
            "properties": {
                "subject": {
                    "type": "string"
                },
                "seen": {
                    "type": "boolean"
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                },
                "details": {}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "meta": {
                    "type": "object"
                }
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
