// Package console contains the page-level controllers of the admin console.
//
// Each controller binds one backend collection to one of the two reusable
// primitives: browsers sit on a pagecache.Cache for lazily-fetched list
// views, editors sit on a reconcile.Reconciler for snapshot/working-copy
// editing with minimal-diff saves. Controllers own no rendering; the CLI
// and the TUI read their state and call their operations.
package console
