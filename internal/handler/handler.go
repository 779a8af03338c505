// Package handler is the first layer after the router.
//
// API handlers bind and validate requests through the validation package,
// call the service layer and relay upstream answers back; web handlers
// render HTML pages from the same services.
package handler
