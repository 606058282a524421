// Package blob provides input adapters that produce the decoded form
// definition tree.
//
// Decoding happens once at the boundary: JSON text (possibly lightly
// malformed) or a saved/fetched viewform page is turned into a
// domain.Node, after which the core never sees raw bytes.
//
// Providers:
//   - FileProvider: a local JSON or HTML file, or "-" for stdin
//   - HTTPProvider: fetches the public viewform page
//   - BrowserProvider: renders the page in headless Chrome
//   - Router: dispatches a reference to the file or remote provider
//
// Watch re-reads a file whenever it changes.
package blob
