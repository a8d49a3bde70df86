// Package ecode defines the business codes carried in API responses.
//
// Codes follow a simple numbering scheme:
//   - 0: success
//   - -400 to -499: request errors
//   - -500 and below: server and upstream errors
//
// Text returns the default message for a code and ToHTTPStatus maps it to
// the HTTP status used by net/resp:
//
//	status := ecode.ToHTTPStatus(ecode.ParamErr) // 400
//	msg := ecode.FieldIsInvalid("epoch")         // "epoch invalid"
package ecode
