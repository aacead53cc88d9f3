// Command pgddl renders PostgreSQL DDL from a YAML or JSON change file.
//
// Usage:
//
//	pgddl [flags] <command>
//
// Commands:
//   - render: print the DDL for every change in a change file
//   - validate: check that a change file decodes and renders
//   - config show: print the effective configuration
//   - version: print version information
package main

func main() {
	Execute()
}
