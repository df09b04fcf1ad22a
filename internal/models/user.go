package models

// Portal roles.
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// Enrollment statuses for students. Legacy records created before statuses
// were introduced carry an empty status and rely on the Enrolled flag.
const (
	EnrollmentPending  = "pending"
	EnrollmentApproved = "approved"
)

// User represents a portal account: a student, instructor, or admin.
type User struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Email               string   `json:"email"`
	Role                string   `json:"role"`
	Enrolled            bool     `json:"enrolled"`
	EnrollmentStatus    string   `json:"enrollmentStatus,omitempty"`
	EnrollmentDate      string   `json:"enrollmentDate,omitempty"`
	Location            string   `json:"location,omitempty"`
	EnrolledCourses     []string `json:"enrolledCourses,omitempty"`
	AssignedInstructors []string `json:"assignedInstructors,omitempty"`
	FSPStudentID        string   `json:"fspStudentId,omitempty"`
	FSPInstructorID     string   `json:"fspInstructorId,omitempty"`
	LastLogin           string   `json:"lastLogin,omitempty"`
}

// CanLogin reports whether the account is usable for login. Students need an
// approved enrollment; a legacy record with no status falls back to the
// enrolled flag. Instructors and admins are always allowed.
func (u User) CanLogin() bool {
	if u.Role != RoleStudent {
		return true
	}
	if u.EnrollmentStatus != "" {
		return u.EnrollmentStatus == EnrollmentApproved
	}
	return u.Enrolled
}
