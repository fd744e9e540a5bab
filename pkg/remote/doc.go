/*
Package remote turns git locators into local template directories.

	"gh:owner/repo.git@v1"
	        |
	  ParseLocator ---> url, ref
	        |
	   GitCloner ----> ReleaseResolver (ref == "latest")
	        |
	   temp directory (caller removes it)

🎯 Purpose:
- Recognises the locator grammar (gh:, gl:, git+scheme://, scp-like, *.git@ref)
- Clones with go-git and checks out a branch, tag or commit
- Resolves `latest` to the newest GitHub release tag
*/
package remote
