// Package ws implements the websocket hub that keeps open pages in step with
// the data file.
//
// New(store, interval, gauge) creates a Hub.
// Hub.Run(ctx) pushes the current dataset summary to every client whenever
// Notify is called (the server wires it to store.OnReload) and once per
// interval as a keep-alive; it blocks until ctx is cancelled, then closes all
// connections.
// Hub.ServeHTTP upgrades an HTTP connection, sends the current summary
// immediately, then streams updates.
//
// Message format sent to clients:
//
//	{
//	  "event": "dataset",
//	  "data":  { /* same schema as GET /api/v1/summary */ }
//	}
//
// The advanced page compares data.version with the version it was rendered
// from and reloads itself when they differ. The upgrader accepts all origins.
// The endpoint is mounted at /ws/stream by the server.
package ws
