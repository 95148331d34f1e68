package mcptools

// --- MCP Tool Input/Output Types ---
// These structs define the JSON schema for each MCP tool. The MCP Go SDK
// auto-generates JSON schemas from struct tags. Optional numeric and boolean
// parameters use pointers so that an omitted field is distinguishable from a
// zero value and no incorrect default is injected into the search invocation.

// SearchParams are the tunable search options shared by the MSA and search
// tools. Omitted fields take the external tool's defaults.
type SearchParams struct {
	GPU           *bool    `json:"gpu,omitempty" jsonschema:"use GPU acceleration for the search step (requires a padded database)"`
	Threads       *int     `json:"threads,omitempty" jsonschema:"number of CPU threads"`
	Sensitivity   *float64 `json:"sensitivity,omitempty" jsonschema:"search sensitivity; higher is more sensitive and slower"`
	NumIterations *int     `json:"numIterations,omitempty" jsonschema:"number of iterative profile-search rounds (>= 1)"`
	EValue        *float64 `json:"eValue,omitempty" jsonschema:"e-value significance threshold"`
	MaxSeqs       *int     `json:"maxSeqs,omitempty" jsonschema:"maximum number of sequences to return"`
}

// GenerateMSAInput is the input for the generate_msa MCP tool.
type GenerateMSAInput struct {
	Sequence     string `json:"sequence,omitempty" jsonschema:"query sequence in one-letter amino acid codes; exactly one of sequence or fastaFile must be provided"`
	FastaFile    string `json:"fastaFile,omitempty" jsonschema:"path to a FASTA file containing the query sequence(s)"`
	SequenceName string `json:"sequenceName,omitempty" jsonschema:"identifier for the sequence (default: query, or the first FASTA header)"`
	OutputDir    string `json:"outputDir,omitempty" jsonschema:"directory for output files (default: a fresh temporary directory)"`
	DatabasePath string `json:"databasePath,omitempty" jsonschema:"MMseqs2 database prefix (default: MMSEQS2_DB_PATH)"`
	ReturnFormat string `json:"returnFormat,omitempty" jsonschema:"a3m returns the MSA content, path returns the output file path (default: a3m)"`
	SearchParams
}

// GenerateMSAOutput is the result of the generate_msa MCP tool.
type GenerateMSAOutput struct {
	A3M        string `json:"a3m,omitempty"`
	Path       string `json:"path,omitempty"`
	MSADir     string `json:"msaDir,omitempty"`
	Status     string `json:"status"` // "completed" or "failed"
	FailedStep int    `json:"failedStep,omitempty"`
	Message    string `json:"message,omitempty"`
}

// GenerateMSAFromFileInput is the input for the generate_msa_from_file MCP
// tool, a convenience wrapper that always preserves results on disk.
type GenerateMSAFromFileInput struct {
	FastaFile    string `json:"fastaFile" jsonschema:"path to a FASTA file containing the query sequence(s)"`
	OutputDir    string `json:"outputDir" jsonschema:"directory to store output files (created if missing)"`
	DatabasePath string `json:"databasePath,omitempty" jsonschema:"MMseqs2 database prefix (default: MMSEQS2_DB_PATH)"`
	SearchParams
}

// GenerateMSABatchInput is the input for the generate_msa_batch MCP tool.
type GenerateMSABatchInput struct {
	Sequences    map[string]string `json:"sequences" jsonschema:"map of sequence name to query sequence"`
	OutputDir    string            `json:"outputDir,omitempty" jsonschema:"directory for per-job subdirectories (default: a fresh temporary directory)"`
	DatabasePath string            `json:"databasePath,omitempty" jsonschema:"MMseqs2 database prefix (default: MMSEQS2_DB_PATH)"`
	MaxParallel  int               `json:"maxParallel,omitempty" jsonschema:"maximum number of jobs to run concurrently (default: 2)"`
	SearchParams
}

// BatchJobOutput is the per-query result within a batch run.
type BatchJobOutput struct {
	Name    string `json:"name"`
	Path    string `json:"path,omitempty"`
	WorkDir string `json:"workDir"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// GenerateMSABatchOutput is the result of the generate_msa_batch MCP tool.
type GenerateMSABatchOutput struct {
	Jobs   []BatchJobOutput `json:"jobs"`
	Status string           `json:"status"`
}

// EasySearchInput is the input for the easy_search MCP tool.
type EasySearchInput struct {
	Sequence     string `json:"sequence,omitempty" jsonschema:"query sequence in one-letter amino acid codes; exactly one of sequence or fastaFile must be provided"`
	FastaFile    string `json:"fastaFile,omitempty" jsonschema:"path to a FASTA file containing the query sequence(s)"`
	SequenceName string `json:"sequenceName,omitempty" jsonschema:"identifier for the sequence"`
	OutputDir    string `json:"outputDir,omitempty" jsonschema:"directory for output files (default: a fresh temporary directory)"`
	DatabasePath string `json:"databasePath,omitempty" jsonschema:"MMseqs2 database prefix (default: MMSEQS2_DB_PATH)"`
	SearchParams
}

// EasySearchOutput is the result of the easy_search MCP tool.
type EasySearchOutput struct {
	HitsPath string `json:"hitsPath,omitempty"`
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
}

// PadDatabaseInput is the input for the pad_database MCP tool.
type PadDatabaseInput struct {
	DatabasePath string `json:"databasePath" jsonschema:"prefix of the database to pad"`
	OutputPath   string `json:"outputPath,omitempty" jsonschema:"prefix for the padded database (default: <databasePath>_padded)"`
}

// PadDatabaseOutput is the result of the pad_database MCP tool.
type PadDatabaseOutput struct {
	PaddedPath string `json:"paddedPath,omitempty"`
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
}

// JobStatusInput is the input for the job_status MCP tool.
type JobStatusInput struct {
	WorkDir string `json:"workDir" jsonschema:"working directory of the pipeline run"`
	Name    string `json:"name,omitempty" jsonschema:"job name; when omitted, all jobs found in the directory are reported"`
}

// JobArtifact describes one artifact of a job's chain.
type JobArtifact struct {
	Step    int    `json:"step"`
	Label   string `json:"label"`
	Path    string `json:"path"`
	Present bool   `json:"present"`
}

// JobChain is the artifact chain of one job.
type JobChain struct {
	Name      string        `json:"name"`
	NextStep  int           `json:"nextStep"` // -1 when complete
	Artifacts []JobArtifact `json:"artifacts"`
}

// JobStatusOutput is the result of the job_status MCP tool.
type JobStatusOutput struct {
	Jobs []JobChain `json:"jobs"`
}
