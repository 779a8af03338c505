// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library for struct tags on form payloads, and
// checks that relayed JSON bodies are structurally sound (a JSON object)
// without interpreting them, since the upstream API owns business rules.
package validation
