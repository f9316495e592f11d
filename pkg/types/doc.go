// Package types defines the core data model for gro: the declared
// configuration (store, workspaces, categories, repo entries), the observed
// filesystem state, and the reconciliation plan produced by comparing the
// two. It has no dependencies on other gro packages so that every component
// can share these types freely.
package types
