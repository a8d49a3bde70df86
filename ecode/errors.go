package ecode

import (
	"fmt"
)

const (
	emptyMsg     = "empty"
	requiredMsg  = "required"
	invalidMsg   = "invalid"
	failedMsg    = "failed"
	notExistMsg  = "does not exist"
	availableMsg = "unavailable"
)

// FieldIsRequired returns field required message
func FieldIsRequired(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], requiredMsg)
	}
	return emptyMsg
}

// FieldIsInvalid returns field invalid message
func FieldIsInvalid(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], invalidMsg)
	}
	return invalidMsg
}

// Failed returns failed message
func Failed(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], failedMsg)
	}
	return failedMsg
}

// NotExist returns not exist message
func NotExist(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], notExistMsg)
	}
	return notExistMsg
}

// Unavailable returns unavailable message
func Unavailable(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], availableMsg)
	}
	return availableMsg
}
