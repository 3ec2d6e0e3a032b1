// Package internaldefs holds the counter name/help definitions shared by the
// metric exporters. It exists so exporter packages agree on metric naming
// without importing each other.
package internaldefs
