package models

// Video lesson categories.
const (
	VideoGround  = "ground"
	VideoFlight  = "flight"
	VideoSafety  = "safety"
	VideoSystems = "systems"
)

// Video is a standalone video lesson in the training library.
type Video struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Duration    string `json:"duration"`
	Date        string `json:"date"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	VideoURL    string `json:"videoUrl"`
	Instructor  string `json:"instructor,omitempty"`
}
