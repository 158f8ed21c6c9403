package api

// Authentication routes.
const (
	PathLogin         = "/auth/login"
	PathRegister      = "/auth/register"
	PathAdminLogin    = "/auth/admin/login"
	PathAdminRegister = "/auth/admin/register"
	PathMe            = "/auth/me"
	PathRefresh       = "/auth/refresh"
	PathLogout        = "/auth/logout"
	PathProfile       = "/auth/profile"
)

// Resource names used in REST routes.
const (
	ResourcePosts        = "posts"
	ResourceInternships  = "internships"
	ResourceTraining     = "training"
	ResourceEmployees    = "employees"
	ResourceJobs         = "jobs"
	ResourceServices     = "services"
	ResourceTestimonials = "testimonials"
	ResourceProjects     = "projects"
	ResourceMessages     = "messages"
	ResourceApplications = "applications"
)

// CollectionPath returns the list/create route for a resource.
func CollectionPath(resource string) string {
	return "/" + resource
}

// DetailPath returns the get/update/delete route for a single record.
func DetailPath(resource, id string) string {
	return "/" + resource + "/" + id
}

// SubApplicationsPath returns the nested applications route for a parent
// record, e.g. /internships/{id}/applications.
func SubApplicationsPath(resource, id string) string {
	return "/" + resource + "/" + id + "/applications"
}

// ApplicationStatusPath returns the admin status-transition route.
func ApplicationStatusPath(id string) string {
	return "/applications/" + id + "/status"
}
