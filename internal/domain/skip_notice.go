package domain

// FileKind identifies which input slot a file was supplied in.
type FileKind string

const (
	FileKindLead        FileKind = "lead"
	FileKindSales       FileKind = "sales"
	FileKindDisposition FileKind = "disposition"
)

// SkipNotice reports an input file that was excluded from a run.
type SkipNotice struct {
	FileName string   `json:"file_name" yaml:"file_name"`
	Kind     FileKind `json:"kind" yaml:"kind"`
	Reason   string   `json:"reason" yaml:"reason"`
}
