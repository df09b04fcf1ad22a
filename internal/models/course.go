package models

// Course types.
const (
	CourseIndoc     = "indoc"
	CourseGround    = "ground"
	CoursePreflight = "preflight"
	CourseOther     = "other"
)

// Material types.
const (
	MaterialDocument = "document"
	MaterialVideo    = "video"
	MaterialQuiz     = "quiz"
)

// Material is one unit of course content. Exactly one content reference is
// populated depending on type: a URL, an embedded file blob, or an exam ID.
type Material struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	URL      string `json:"url,omitempty"`
	FileData string `json:"fileData,omitempty"`
	FileName string `json:"fileName,omitempty"`
	FileType string `json:"fileType,omitempty"`
	ExamID   string `json:"examId,omitempty"`
}

// Course is an ordered collection of materials a student must work through.
// Completed and CompletionDate are derived state: only the completion
// evaluator sets them.
type Course struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Type           string     `json:"type"`
	Required       bool       `json:"required"`
	EstimatedTime  string     `json:"estimatedTime"`
	Completed      bool       `json:"completed"`
	CompletionDate string     `json:"completionDate,omitempty"`
	Materials      []Material `json:"materials"`
}
