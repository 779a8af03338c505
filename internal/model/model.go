// Package model holds the wire types exchanged with the upstream car API.
//
// The proxy routes relay bodies verbatim; these types are only decoded where
// the service needs to look inside a record (web UI, ownership checks, CLI).
package model
