// Package api defines the request and response messages of the
// tripsplit.v1 TripService and the JSON codec they travel with.
//
// Amounts on the wire are JSON numbers in major currency units (12.5).
// Rounding granularity is an integer count of minor units, matching how
// the settlement engine reasons about it. Dates are "YYYY-MM-DD".
package api
