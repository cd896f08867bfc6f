package schema

// CheckStatus is the outcome of a single preflight check.
type CheckStatus string

const (
	StatusOK    CheckStatus = "ok"
	StatusWarn  CheckStatus = "warn"
	StatusError CheckStatus = "error"
)

// PreflightCheck is one repository-health heuristic result.
type PreflightCheck struct {
	Name     string      `json:"name"`
	Status   CheckStatus `json:"status"`
	Found    string      `json:"found,omitempty"`
	Expected string      `json:"expected,omitempty"`
	Fix      string      `json:"fix,omitempty"`
}

// PreflightReport aggregates all checks run against a repository path.
type PreflightReport struct {
	Path    string           `json:"path"`
	Checks  []PreflightCheck `json:"checks"`
	Summary string           `json:"summary"`
}

// Citation points from an answer back to the grounding source it was built from.
type Citation struct {
	Source    string `json:"source"`
	File      string `json:"file"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	URL       string `json:"url,omitempty"`
}

// Answer is a grounded response to a natural-language question. Bullets and
// Citations are index-aligned: citation i backs bullet i.
type Answer struct {
	Summary   string     `json:"summary"`
	Bullets   []string   `json:"bullets"`
	Citations []Citation `json:"citations"`
}

// FileChange records change activity for one file. Count is set in git mode,
// ModifiedAt in the mtime fallback.
type FileChange struct {
	File       string `json:"file"`
	Count      int    `json:"count,omitempty"`
	ModifiedAt string `json:"modified_at,omitempty"`
}

// CommitSummary is one parsed commit from the git log.
type CommitSummary struct {
	Hash    string   `json:"hash"`
	Date    string   `json:"date"`
	Subject string   `json:"subject"`
	Files   []string `json:"files"`
}

// ChangeDigestReport summarizes recent change activity under a path.
type ChangeDigestReport struct {
	Path        string          `json:"path"`
	Since       string          `json:"since"`
	CommitCount int             `json:"commit_count"`
	TopFiles    []FileChange    `json:"top_files"`
	Commits     []CommitSummary `json:"commits"`
	Note        string          `json:"note,omitempty"`
}

// ActionStatus marks an onboarding step as pending or complete.
type ActionStatus string

const (
	ActionTodo ActionStatus = "todo"
	ActionDone ActionStatus = "done"
)

// OnboardAction is one suggested next step for a newcomer to the repository.
type OnboardAction struct {
	Name   string       `json:"name"`
	Status ActionStatus `json:"status"`
	Detail string       `json:"detail,omitempty"`
}

// OnboardReport is the combined onboarding view: health checks, index state
// and where to go next.
type OnboardReport struct {
	Path          string            `json:"path"`
	ChunksIndexed int               `json:"chunks_indexed"`
	Preflight     *PreflightReport  `json:"preflight"`
	Links         map[string]string `json:"links"`
	NextSteps     []OnboardAction   `json:"next_steps"`
}
