package source

type (
	// FileID identifies a declaration file within a FileSet.
	FileID uint32
	// FileFlags records how a file's content was obtained and normalised.
	FileFlags uint8
)

const (
	// FileVirtual marks content added from memory (tests, stdin).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File is one loaded declaration document.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based human readable position.
type LineCol struct {
	Line uint32
	Col  uint32
}
