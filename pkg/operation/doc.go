/*
Package operation instantiates a template directory into a destination.

	 source locator
	      |
	  remote.ParseLocator --(git)--> Cloner --> temp dir (removed on return)
	      |
	+-----+------+      +-----------+      +-----------+
	|  walker    | ---> |  filter   | ---> | conflict  | ---> write / copy
	| (depth 1st)|      |  Policy   |      | Resolver  |
	+-----+------+      +-----------+      +-----------+
	      |
	   tasks (mvdan.cc/sh) in the destination

🎯 Purpose:
- Walks the template, files of a directory before its subdirectories
- Renders entry names and the content of files matching the render set
- Applies exclude/include before reading excluded directories
- Writes only on create/overwrite, never in pretend mode
- Runs the post copy tasks in order, stopping at the first failure

📝 Everything is sequential. The context is checked between entries so a
cancelled copy stops at the next entry boundary.

🔍 Example:

	err := operation.Copy(ctx, "gh:owner/skeleton.git@v1", "./my-app",
		map[string]any{"name": "my-app"},
		operation.Options{Reporter: log.New(os.Stdout), Skip: true},
	)
*/
package operation
