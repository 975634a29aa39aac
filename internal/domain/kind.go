package domain

// Kind classifies an input name supplied on the command line.
type Kind int

const (
	// KindPlainPath is a filesystem path matching no other heuristic.
	KindPlainPath Kind = iota
	// KindTestScript is a test script (by suffix).
	KindTestScript
	// KindSourceFile is a source file (by suffix).
	KindSourceFile
	// KindPackage is a bare package name like Foo::Bar.
	KindPackage
	// KindDirectory is an existing filesystem directory.
	KindDirectory
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindTestScript:
		return "test script"
	case KindSourceFile:
		return "source file"
	case KindPackage:
		return "package"
	case KindDirectory:
		return "directory"
	default:
		return "path"
	}
}
