// Package errs define custom error types and utilities.
//
// Its purpose is to give every failure leaving the service, whether it
// started in this process or was relayed from the upstream car API, one
// consistent JSON shape so the browser UI and API clients receive
// meaningful, actionable error messages.
package errs
