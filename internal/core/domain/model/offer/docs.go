// Package offer holds the Offer aggregate: a carrier's proposal against an expedition.
package offer
