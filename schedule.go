package depot

// Schedule names a phase of the engine tick
type Schedule string

const (
	// Start systems run once, when the engine starts
	Start       Schedule = "Start"
	PreUpdate   Schedule = "PreUpdate"
	Update      Schedule = "Update"
	PostUpdate  Schedule = "PostUpdate"
	FixedUpdate Schedule = "FixedUpdate"
	Render      Schedule = "Render"
)

// Schedules lists the recognized phases in execution order
var Schedules = []Schedule{Start, PreUpdate, Update, PostUpdate, FixedUpdate, Render}
