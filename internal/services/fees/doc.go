// Package fees previews transaction costs.
//
// Estimates are perishable and advisory: a quote belongs to one draft, and
// an unreachable fee service degrades to a zero-fee quote instead of
// blocking the operation it describes.
package fees
