// Package httputil provides HTTP vocabulary shared by the RAML loader:
// method names, status code checks and media type checks.
package httputil

import (
	"mime"
	"strconv"
	"strings"
)

// HTTP status code bounds.
const (
	StatusCodeLength = 3   // Standard length of HTTP status codes (e.g., "200", "404")
	MinStatusCode    = 100 // Minimum valid HTTP status code
	MaxStatusCode    = 599 // Maximum valid HTTP status code
)

// HTTP methods as RAML spells them (lower case).
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace"
	MethodConnect = "connect"
)

// Methods lists every method a RAML resource may declare, in the order
// documentation usually presents them.
var Methods = []string{
	MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete,
	MethodHead, MethodOptions, MethodTrace, MethodConnect,
}

var methodSet = func() map[string]bool {
	m := make(map[string]bool, len(Methods))
	for _, method := range Methods {
		m[method] = true
	}
	return m
}()

// IsMethod reports whether key names an HTTP method.
func IsMethod(key string) bool {
	return methodSet[key]
}

// ValidateStatusCode checks that a response key is a numeric HTTP status
// code between 100 and 599.
func ValidateStatusCode(code string) bool {
	if len(code) != StatusCodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	statusCode, err := strconv.Atoi(code)
	return err == nil && statusCode >= MinStatusCode && statusCode <= MaxStatusCode
}

// IsMediaType reports whether key looks like a media type ("type/subtype"),
// which is how RAML tells a body keyed by media type from a body that uses
// the default media type.
func IsMediaType(key string) bool {
	if key == "*/*" {
		return true
	}
	typ, _, ok := strings.Cut(key, "/")
	if !ok || typ == "" || typ == "*" {
		return false
	}
	if strings.HasSuffix(key, "/*") {
		return true
	}
	_, _, err := mime.ParseMediaType(key)
	return err == nil
}
