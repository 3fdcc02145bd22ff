// Package bundle contains the Bundle aggregate and its value objects: the
// packed bundle number codec that groups split siblings, the status state
// machine, the action vocabulary, and the append-only history ledger.
//
// A bundle is a physical unit of material cut from stock under a cut order.
// Bundles are mutated only through the four actions (move, assign, use,
// split); history entries are appended for every action and are never edited
// or deleted. The history is the sole source of truth for a bundle's current
// work order and for the audit trail.
package bundle
