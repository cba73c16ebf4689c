// Package party holds the Party aggregate and its rating aggregate.
package party
