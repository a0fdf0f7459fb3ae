// ABOUTME: HTTP handlers for the employee directory: list, birthdays, add,
// ABOUTME: remove, update. Mutations persist a roster snapshot behind the scenes.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/britecreationsdylanne/brite-side/internal/directory"
)

// listEmployeesHandler handles GET /api/employees.
// Returns the full roster for the UI's dropdowns.
func (srv *Server) listEmployeesHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"employees": srv.dir.List(),
	})
}

// birthdaysHandler handles GET /api/employees/birthdays?month=N.
// Returns employees with a birthday in the given month, sorted by day.
func (srv *Server) birthdaysHandler(w http.ResponseWriter, r *http.Request) {
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "Valid month parameter (1-12) required")
		return
	}

	birthdays := srv.dir.Birthdays(month)
	if birthdays == nil {
		birthdays = []directory.Employee{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"month":      month,
		"month_name": time.Month(month).String(),
		"birthdays":  birthdays,
	})
}

// addEmployeeBody is the JSON request body for POST /api/employees/add.
type addEmployeeBody struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	BirthdayMonth int    `json:"birthday_month"`
	BirthdayDay   int    `json:"birthday_day"`
	Department    string `json:"department"`
	Title         string `json:"title"`
}

// addEmployeeHandler handles POST /api/employees/add.
func (srv *Server) addEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	var req addEmployeeBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Employee name is required")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "Employee email is required")
		return
	}

	emp, err := srv.dir.Add(r.Context(), directory.Employee{
		Name:          req.Name,
		Email:         req.Email,
		BirthdayMonth: req.BirthdayMonth,
		BirthdayDay:   req.BirthdayDay,
		Department:    req.Department,
		Title:         req.Title,
	})
	if errors.Is(err, directory.ErrDuplicateEmail) {
		writeError(w, http.StatusConflict, fmt.Sprintf("Employee with email %s already exists", req.Email))
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "add employee", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	slog.InfoContext(r.Context(), "employee added", "name", emp.Name, "email", emp.Email)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"employee": emp,
		"total":    srv.dir.Count(),
	})
}

// emailBody is the JSON request body for endpoints keyed by employee email.
type emailBody struct {
	Email string `json:"email"`
}

// removeEmployeeHandler handles DELETE /api/employees/remove.
func (srv *Server) removeEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	var req emailBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "Employee email is required")
		return
	}

	if err := srv.dir.Remove(r.Context(), req.Email); err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Employee with email %s not found", req.Email))
			return
		}
		slog.ErrorContext(r.Context(), "remove employee", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	slog.InfoContext(r.Context(), "employee removed", "email", req.Email)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"total":   srv.dir.Count(),
	})
}

// updateEmployeeBody is the JSON request body for PUT /api/employees/update.
// Pointer fields distinguish "not provided" from "set to zero".
type updateEmployeeBody struct {
	Email string `json:"email"`
	directory.Patch
}

// updateEmployeeHandler handles PUT /api/employees/update.
func (srv *Server) updateEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	var req updateEmployeeBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "Employee email is required")
		return
	}

	emp, err := srv.dir.Update(r.Context(), req.Email, req.Patch)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Employee with email %s not found", req.Email))
			return
		}
		slog.ErrorContext(r.Context(), "update employee", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	slog.InfoContext(r.Context(), "employee updated", "name", emp.Name, "email", req.Email)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"employee": emp,
	})
}
