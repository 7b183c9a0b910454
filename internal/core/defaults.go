package core

// Seed values used when nothing has been stored yet.
var (
	DefaultCategories = []string{"Comida", "Transporte", "Ocio", "Hogar", "Salud", "Educación"}
	DefaultUsers      = []string{"Usuario 1", "Usuario 2"}
	DefaultBudget     = Money{Cents: 2000_00}
)
