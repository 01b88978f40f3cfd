// Package opencollective fetches contribution transactions from the
// Open Collective GraphQL v2 API.
//
// Endpoint: https://api.opencollective.com/graphql/v2
//
// Only CREDIT transactions are fetched, bounded by a dateFrom window.
// A GraphQL "errors" array in the response is a hard failure even when
// the HTTP status is 200.
package opencollective
