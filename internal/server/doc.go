// Package server exposes the run metrics of primecalc over HTTP for
// Prometheus scraping (--metrics-addr).
package server
