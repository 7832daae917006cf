// Package orchestration runs one or more prime-finding engines concurrently,
// wires their sinks, progress and metrics, and analyzes the results. It is
// decoupled from presentation through the ProgressReporter and
// ResultPresenter interfaces.
package orchestration
