package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	// FileNotNFC indicates the content is not NFC-normalized Unicode.
	// Byte offsets stay exact either way; the flag only warns formatters
	// that editor columns may disagree with ours.
	FileNotNFC
)

// File captures metadata and content for a single source file.
// Content is kept byte-for-byte as on disk (minus a leading BOM): the trivia
// scanner handles \r\n itself, and fix edits must land on original offsets.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
