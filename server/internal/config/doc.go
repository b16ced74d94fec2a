// Package config loads the server configuration from a YAML file.
//
// Config fields:
//   - Server.HTTPPort: port for pages, API, websocket and /metrics (default 8080)
//   - Server.BroadcastInterval: websocket keep-alive push period (default 30s)
//   - Data.CSVPath: quartet CSV file (default data/Anscombe_quartet_data.csv)
//   - Data.NotebookPath: notebook HTML for the notebook view (default data/quartet_notebook.html)
//   - Data.Watch: reload the CSV on change (default true)
//   - Charts.Width/Height: chart size in pixels (default 300x300)
//   - Charts.TrendColor: OLS line colour, a name or hex triplet (default red)
//
// Load(path) applies defaults before unmarshalling, then validates.
package config
