package usecase

// Routes understood by the navigation shell.
const (
	RouteLogin     = "/login"
	RouteRegister  = "/register"
	RouteDashboard = "/dashboard"
	RouteProducts  = "/products"
)

// Navigator is the routing collaborator. Session errors are translated into a
// Goto(RouteLogin) and nothing else; the shell decides how to render that.
type Navigator interface {
	Goto(route string)
}

// Notifier raises transient user-facing notices. Success notices auto-dismiss
// after a fixed duration in the shell.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}
