// Package metrics defines the Prometheus collectors exported by the linker.
package metrics
