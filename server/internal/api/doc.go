// Package api implements the JSON API of the quartet server.
//
// New(store) returns an http.Handler that serves:
//
//	GET /api/v1/health           {"status":"ok"|"missing_data"}; 503 when data is missing
//	GET /api/v1/dataset          raw table: columns + rows in file order
//	GET /api/v1/groups           all four group reports (points, summaries, fit)
//	GET /api/v1/groups/{name}    one group (I, II, III, IV); 404 if unknown
//	GET /api/v1/summary          describe tables, fits and the "similar" flag
//
// All endpoints:
//   - Respond with Content-Type: application/json
//   - Return 405 for non-GET methods
//   - Return 503 with {"error": ...} while the data file is missing or malformed
//
// JSON types are defined in types.go. No external HTTP framework is used.
package api
