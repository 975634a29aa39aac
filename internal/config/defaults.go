package config

const (
	// DefaultTestDir is the name of the test-script directory under the project root
	DefaultTestDir = "t"
	// DefaultLibDir is the library subdirectory implicitly scanned for sources
	DefaultLibDir = "lib"
	// DefaultTestSuffix is the recognized test-script suffix
	DefaultTestSuffix = ".t"
	// DefaultRunner is the external test command
	DefaultRunner = "make"
	// DefaultPackage is the implicit package before any declaration is seen
	DefaultPackage = "main"
	// DebugEnvVar enables debug tracing when set to a non-empty value
	DebugEnvVar = "TMAP_DEBUG"
)

// DefaultSourceSuffixes are the source-file suffixes recognized when
// classifying an explicitly named file.
var DefaultSourceSuffixes = []string{".pm", ".pl"}

// DefaultWalkSuffixes are the suffixes collected by directory traversal.
// This set is deliberately narrower than the explicit-name notion of a
// source file; see the Classify docs.
var DefaultWalkSuffixes = []string{".pm", ".t"}
