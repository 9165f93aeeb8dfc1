// Package config provides human-readable chain definitions.
//
// Register actions by name in a chain.Registry, then define chains in YAML (or
// structs) that reference those names, seed the store and optionally override
// input mappings or add outputs:
//
//	name: release
//	args:
//	  a: 1
//	actions:
//	  - create_tarball
//	  - name: sign_artifact
//	    map: {b: tarball}
//	    outputs: [signature]
//
// Build a chain with BuildChain(registry, config, opts).
package config
