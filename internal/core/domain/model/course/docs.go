// Package course holds the Course aggregate: transport capacity a carrier offers on a
// route and date. Committed capacity is never stored on the course; it is derived
// from bookings by the capacity ledger.
package course
