// Package cli implements the interactive views of the catalog client.
//
// The application behaves like a small routed app in the terminal: the user
// opens navigable routes (/register, /login, /products, /product,
// /create-product, /dashboard) and the active view offers its own commands
// at the prompt. The /products route carries the active filter in its query
// string, so reopening the same address reproduces the same listing. The
// current route is persisted locally and restored on the next start.
package cli
