package database

// Storage keys. Each key holds one JSON document.
const (
	KeySession = "current-session"
	KeyUsers   = "all-users"
	KeyJobs    = "all-jobs"

	applicationsPrefix   = "applications-for-"
	coursesPrefix        = "courses-for-"
	courseProgressPrefix = "course-progress-"
)

// ApplicationsKey is the key of a user's job applications
func ApplicationsKey(userID string) string {
	return applicationsPrefix + userID
}

// ApplicationsPrefix is the common prefix of every applications key
func ApplicationsPrefix() string {
	return applicationsPrefix
}

// CoursesKey is the key of a user's course enrollments
func CoursesKey(userID string) string {
	return coursesPrefix + userID
}

// CourseProgressKey is the key of the per-course player progress map
func CourseProgressKey(courseID string) string {
	return courseProgressPrefix + courseID
}
