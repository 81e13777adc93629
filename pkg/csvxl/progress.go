package csvxl

// Stage identifies a phase of a conversion run.
type Stage string

const (
	// StageRead covers source file reading.
	StageRead Stage = "read"
	// StageMerge covers duplicate resolution and sheet merging.
	StageMerge Stage = "merge"
	// StageWrite covers workbook writing.
	StageWrite Stage = "write"
)

// ProgressEvent reports one completed step of a conversion run.
type ProgressEvent struct {
	// Stage is the phase the step belongs to.
	Stage Stage
	// Target is the file or sheet the step worked on.
	Target string
	// Done counts the steps finished in this stage, including this one.
	Done int
	// Total counts the steps the stage will run.
	Total int
}

// ProgressFunc receives progress events. Calls are serialized but can
// arrive from reader goroutines, not only from the one running Convert.
type ProgressFunc func(ProgressEvent)
