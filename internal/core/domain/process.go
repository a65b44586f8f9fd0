package domain

// ReferencePair is a completed (source, processed) example supplied to the
// processor as few-shot context. Value type; lives for one run.
type ReferencePair struct {
	Source    string `json:"source"`
	Processed string `json:"processed"`
}

// ProcessorCapabilities describes what the external processor's signature
// supports. Resolved once when the processor is constructed, never probed
// per call.
type ProcessorCapabilities struct {
	References     bool `json:"references"`
	TargetLanguage bool `json:"target_language"`
}

// ProcessStats counts unit outcomes for one document run.
type ProcessStats struct {
	Complete int `json:"complete"`
	Failed   int `json:"failed"`
	Skipped  int `json:"skipped"`
}

// DocumentResult is the outcome of processing one document.
type DocumentResult struct {
	RunID       string       `json:"run_id"`
	SourcePath  string       `json:"source_path"`
	TargetPath  string       `json:"target_path"`
	CatalogPath string       `json:"catalog_path"`
	Blocks      int          `json:"blocks"`
	Stats       ProcessStats `json:"stats"`
	Coverage    Coverage     `json:"coverage"`
	Duration    float64      `json:"duration_seconds"`
}

// BatchResult aggregates a directory run.
type BatchResult struct {
	SourceDir    string            `json:"source_dir"`
	TargetDir    string            `json:"target_dir"`
	CatalogDir   string            `json:"catalog_dir"`
	FilesDone    int               `json:"files_processed"`
	FilesSkipped int               `json:"files_skipped"`
	FilesFailed  int               `json:"files_failed"`
	Results      []*DocumentResult `json:"results"`
}
