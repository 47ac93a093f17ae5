package dongchedi

// Stage identifies a phase of the parse pipeline for progress reporting.
type Stage string

// Pipeline stages, in order.
const (
	StageFetching    Stage = "fetching"
	StageExtracting  Stage = "extracting"
	StageNormalizing Stage = "normalizing"
	StageTranslating Stage = "translating"
	StageDone        Stage = "done"
)

// Progress reports pipeline progress for one parse request.
type Progress struct {
	Stage Stage
	URL   string
	// Detail carries a short human-readable note (e.g., field counts).
	Detail string
}

// ProgressFunc is called as a parse request moves through the pipeline.
type ProgressFunc func(Progress)
