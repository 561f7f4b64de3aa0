// Package browser serves the catalog browsing API and the static
// front-end page.
//
// All data endpoints are read-only views over the catalog; ingestion
// happens out of band through the inject command.
package browser
