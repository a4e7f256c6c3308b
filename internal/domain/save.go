package domain

// ResolveRequest describes the desired output file name.
type ResolveRequest struct {
	Folder    string
	BaseName  string
	Format    Format
	Overwrite bool
	Replace   string
	With      string
}

// Resolution is the outcome of name resolution. ResolvedBaseName is the
// expanded and replaced name; a collision suffix, if any, only appears in Path.
type Resolution struct {
	Path             string
	Folder           string
	Format           Format
	OriginalBaseName string
	ResolvedBaseName string
	SubstringApplied bool
}

// SupersededPath returns the path of the file named after the original base
// name, which a rename makes obsolete.
func (r Resolution) SupersededPath() string {
	return OutputPath(r.Folder, r.OriginalBaseName, r.Format)
}

// WriteRequest asks for a batch to be persisted at a resolved path.
type WriteRequest struct {
	Batch         Batch
	Resolution    Resolution
	DeleteOldFile bool
	Encoding      EncodeOptions
}

// OutputDescriptor is returned once per save call.
type OutputDescriptor struct {
	OriginalBaseName string `json:"input_name"`
	ResolvedBaseName string `json:"output_name"`
	FullPath         string `json:"full_path"`
	DeletedPath      string `json:"deleted,omitempty"`
	Frames           int    `json:"frames"`
}
