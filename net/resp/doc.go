// Package resp writes the JSON envelope used by the talentsearch HTTP API.
//
// Successful responses carry their payload as the body:
//
//	resp.Success(w, map[string]any{"ids": ids})
//
// Failures carry a business code from ecode plus an optional errors value:
//
//	{"code": -401, "message": "invalid parameters", "errors": {"epoch": "..."}}
//
// The constructors in errors.go build the matching Exception:
//
//	resp.Fail(w, resp.BadRequest("invalid parameters", fieldErrors))
package resp
