// Package upstreamerr specifically handles failures of the upstream car API.
//
// It turns transport errors and non-2xx upstream answers into errs.HTTPError
// values (e.g. a 404 on /cars/{id} becomes CAR_NOT_FOUND) so handlers and the
// global error handler can treat them like any other application error.
package upstreamerr
