// Package pages serves the browser views of the quartet.
//
// Routes registered by New:
//
//	GET /                       version selector ("Getting Started")
//	GET /notebook               notebook export in an iframe; 404 panel if the file is missing
//	GET /notebook/raw           the notebook export itself
//	GET /basic                  tables, describe() tables and PNG charts
//	GET /advanced               styled tables, SVG charts with trend lines, live reload
//	GET /charts/{name}.{ext}    one chart; ext is png or svg, ?trend=1&fixed=1 select the variant
//
// While the store holds a load error, /basic and /advanced respond 503 with an
// error panel and chart requests respond 503 with a plain-text message.
// Templates are embedded from templates/ and parsed once in New.
package pages
