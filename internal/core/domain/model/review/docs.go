// Package review holds the Review entity: a 1..5 rating one party gives another.
package review
