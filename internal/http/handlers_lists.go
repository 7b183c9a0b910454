package http

import (
	"context"
	"net/http"
)

type listData struct {
	View   View
	Back   View
	Items  []string
	Label  string
	Action string
}

func (s *Server) handleListView(v View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := listData{
			View:   v,
			Back:   v.Back(),
			Action: v.Path(),
		}
		switch v {
		case ViewCategories:
			data.Items = s.ledger.Categories()
			data.Label = "Nueva categoría"
		case ViewUsers:
			data.Items = s.ledger.Users()
			data.Label = "Nuevo usuario"
		}
		s.render(w, r, "list.html", data)
	}
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	s.applyListChange(w, r, ViewCategories, s.ledger.AddCategory)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	s.applyListChange(w, r, ViewCategories, s.ledger.DeleteCategory)
}

func (s *Server) handleAddUser(w http.ResponseWriter, r *http.Request) {
	s.applyListChange(w, r, ViewUsers, s.ledger.AddUser)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	s.applyListChange(w, r, ViewUsers, s.ledger.DeleteUser)
}

// applyListChange feeds the posted name to a list operation and returns to
// the same screen. Blank or duplicate names are no-ops inside the ledger.
func (s *Server) applyListChange(w http.ResponseWriter, r *http.Request, v View, op func(context.Context, string) bool) {
	defer redirect(w, r, v)

	form, err := parseForm(r)
	if err != nil {
		return
	}
	op(r.Context(), formValue(form, fieldName))
}
