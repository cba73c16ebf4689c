// Package services provides the domain services of the freight engine: logic that
// spans several aggregates or derives figures no single aggregate owns.
//
// The package includes:
//   - PricingCalculator: price estimates and booking prices
//   - CapacityLedger: committed and available capacity of a course
//   - Matcher: search filtering, ordering and paging
//   - OfferAcceptance and Cancellation: all-or-nothing transition cascades
//   - RatingAggregator: party ratings recomputed from the review set
package services
