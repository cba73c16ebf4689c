// Package expedition holds the Expedition aggregate: a shipment request posted by a
// sender, its lifecycle state machine and its urgency ranking.
package expedition
