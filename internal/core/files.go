package core

// ChangedFile holds the filename, change status and patch data for a single
// file included in a pull request. Files without a patch (binary files,
// removals without a diff) carry an empty Patch.
type ChangedFile struct {
	Filename string
	Status   string // added, modified, removed, renamed
	Patch    string
}
