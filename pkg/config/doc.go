// Package config loads reshape run configurations.
//
//	            +-------------+
//	            |   Config    |
//	            |  (a run)    |
//	            +------+------+
//	                   |
//	     +-------------+-------------+
//	     |             |             |
//	+----+----+   +----+----+   +----+----+
//	|  YAML   |   |   HCL   |   |  JSON   |
//	| Parser  |   | Parser  |   | Parser  |
//	+---------+   +---------+   +---------+
//
// A configuration lists scope sources, actions in the order they run, the files
// to process and the failure policy. Parsers are picked by file extension and
// reject unknown fields.
//
// 🔍 Example (YAML):
//
//	scopes:
//	  - language: go
//	    query: comments
//	  - pattern: 'TODO\((?P<who>\w+)\)'
//	actions:
//	  - kind: replace
//	    with: 'TODO(@${who})'
//	files: ["**/*.go"]
//	ignore: ["vendor/**"]
//
// The same in HCL, where template variables need a doubled dollar:
//
//	scope {
//	  language = "go"
//	  query    = "comments"
//	}
//	scope {
//	  pattern = "TODO\\((?P<who>\\w+)\\)"
//	}
//	action "replace" {
//	  with = "TODO(@$${who})"
//	}
//	files  = ["**/*.go"]
//	ignore = ["vendor/**"]
//
// Load validates the structure; Sources and BuildActions compile patterns,
// queries and templates, so every configuration error surfaces before any input
// is read.
package config
