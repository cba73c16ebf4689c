// Package kernel provides the shared primitives of the freight domain model.
//
// The package includes:
//   - UUID: identifier value object for every aggregate
//   - Place: address + city with case-insensitive matching used by search
//   - Actor and Role: the identity context (party id + marketplace side) passed to every command
//   - TransitionTable: the generic (state, event) → state table behind all four status machines
//   - decimal helpers for weights, volumes and money
//
// Quantities are github.com/shopspring/decimal values throughout so that capacity
// comparisons ("committed equals maximum") are exact.
package kernel
