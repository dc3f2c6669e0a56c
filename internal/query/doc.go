// Package query describes the filter, sort and pagination parameters accepted by list
// and lookup operations. Each entity declares which public keys it permits and the
// storage column each key maps to; anything else never reaches a query.
package query
