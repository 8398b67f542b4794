// Package models defines the core domain models for tripsplit.
//
// # Models
//
//   - Trip: a journey shared by a group of members, carrying the base
//     currency and the rounding rule used for every settlement figure.
//   - Member: a traveler on a trip with a weight factor (1.0 = full share).
//   - Expense: a purchase paid by one member, either shared by the whole trip
//     or personal to the payer.
//   - Payment: a transfer between two members that has already happened.
//
// # Money
//
// Monetary values are fixed-point integers (Money) counting minor units,
// 1/100 of the major unit of the currency. Exchange rates and weight factors
// are decimals. Conversion to and from display form happens only at the RPC
// boundary.
//
// # Design Principles
//
//  1. Relationships use ID strings, never pointers.
//  2. Models are plain records; all calculation lives in package calculator.
//  3. Storage fills in IDs and timestamps; callers never need to.
package models
