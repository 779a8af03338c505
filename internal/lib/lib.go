// Package lib holds modules that do not fit strictly into other layers: the
// upstream API client and small shared utilities.
package lib
