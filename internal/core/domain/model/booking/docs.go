// Package booking holds the Booking aggregate: a sender's reservation of weight, and
// optionally volume, on a course.
package booking
