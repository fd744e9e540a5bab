/*
Package config reads the optional config file at the root of a template.

	      +--------------+
	      |  FileLoader  |
	      +------+-------+
	             |  tmplrc.{yaml,yml,hcl,json}
	   +---------+---------+
	   |         |         |
	+--+---+ +---+--+ +----+---+
	| YAML | | HCL  | |  JSON  |
	+------+ +------+ +--------+

🎯 Purpose:
- Finds the first of FileNames in the template root
- Picks a Parser from the registry by extension
- Returns the per-category pattern lists and tasks

📝 A key that is absent stays nil so that filter.Resolve can tell
"not given" apart from "given as empty". LoadDefaults is the soft-fail
entry point used by the copy engine.

🔍 Example (tmplrc.yaml):

	exclude:
	  - "*.bak"
	  - ".git"
	include:
	  - ".gitignore"
	skip_if_exists:
	  - "config/*.local"
	tasks:
	  - git init -q
*/
package config
