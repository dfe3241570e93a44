// Package persistence reads and updates product records through whatever
// database handle the caller supplies.
//
// The Adapter picks a strategy per call, in this order:
//
//   - custom: the handle implements ProductStore (Catalog is one)
//   - dispatcher: the handle implements Dispatcher or is a DispatchFunc
//   - collection: a mongo collection or database, DocumentCollection or
//     CollectionProvider
//   - mapping: a map[string]any keyed by product code
//
// Any other handle is unsupported: lookups log and return nil, writes fail
// with ErrUnsupportedBackend. Errors raised by a supported backend are
// logged at the adapter and never reach the caller.
package persistence
