// Package metrics counts outbound attempts, retries, classified failures and
// extraction outcomes with Prometheus collectors. A Recorder plugs into
// retry.Policy as its Observer and into the insights analyzer as its
// extraction observer. CLI runs can dump the registry to a node-exporter
// textfile.
package metrics
