// Package http implements HTTP request handlers for the log report service.
// It provides a thin layer between HTTP transport and business logic, following
// the clean architecture principle of keeping handlers focused solely on HTTP concerns.
//
// # Architecture Principles
//
// Handlers in this package follow these principles:
//
//	1. Thin handlers - minimal logic, delegate to services
//	2. HTTP-only concerns - request parsing, response formatting
//	3. Error transformation - convert service errors to HTTP responses
//	4. No business logic - all logic belongs in the service layer
//	5. Consistent patterns - standardized request/response handling
//
// # Request Flow
//
// A typical request flows through these layers:
//
//	HTTP Request → Chi Router → Middleware → Handler → Service → Pipeline
//	                                              ↓
//	HTTP Response ← Handler ← Service Response ←─┘
//
// The report handler adds one transport-specific step: uploaded log exports
// are staged to disk before the pipeline runs, and the rendered workbook is
// streamed back as an attachment afterwards.
//
// # Error Handling
//
// All errors follow RFC 7807 Problem Details specification:
//
//	{
//	    "type": "/errors/schema",
//	    "title": "Input Schema Invalid",
//	    "status": 400,
//	    "detail": "input is missing required columns: level, message",
//	    "instance": "/api/reports"
//	}
//
// # Middleware Integration
//
// Handlers work with these middleware:
//
//	- RequestID: Adds unique request ID for tracing
//	- StructuredLogger: Structured logging with slog
//	- Recoverer: Handles panics gracefully
//	- ContentTypeValidator: Rejects non-multipart uploads early
//	- ValidateRequest: Caps upload sizes before parsing
//
// # Testing
//
// Handlers are tested using httptest:
//
//	- Drive requests through the chi router
//	- Test various HTTP scenarios
//	- Verify error responses
//	- Check middleware integration
package http
