package domain

// IndexSnapshot is the serializable form of the cross-reference index,
// used by the JSON export and the interactive viewer.
type IndexSnapshot struct {
	Meta SnapshotMeta `json:"meta"`
	// Packages maps a package name to the test scripts covering it.
	Packages map[string][]string `json:"packages"`
	// Files maps an absolute file path to the test scripts covering it.
	Files map[string][]string `json:"files"`
	// Declares maps an absolute file path to the packages declared in it.
	Declares map[string][]string `json:"declares"`
	// Dirs maps a directory to the files discovered beneath it.
	Dirs map[string][]string `json:"directories"`
}

// SnapshotMeta describes where and when a snapshot was taken.
type SnapshotMeta struct {
	ProjectRoot string `json:"project_root"`
	TestDir     string `json:"test_dir"`
	Timestamp   string `json:"timestamp"`
}
