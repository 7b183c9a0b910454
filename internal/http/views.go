package http

// View identifies one of the application screens.
type View int

const (
	ViewDashboard View = iota
	ViewCategories
	ViewUsers
)

// Path returns the route that renders the view.
func (v View) Path() string {
	switch v {
	case ViewCategories:
		return "/categories"
	case ViewUsers:
		return "/users"
	default:
		return "/"
	}
}

// Back returns the view reached from the back link. Every management
// screen returns to the dashboard.
func (v View) Back() View {
	return ViewDashboard
}

func (v View) String() string {
	switch v {
	case ViewCategories:
		return "categories"
	case ViewUsers:
		return "users"
	default:
		return "dashboard"
	}
}

// Title is the heading shown on the screen.
func (v View) Title() string {
	switch v {
	case ViewCategories:
		return "Gestionar Categorías"
	case ViewUsers:
		return "Gestionar Usuarios"
	default:
		return "Control de Finanzas"
	}
}
