package corehandler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hrpay/internal/domain/core"
)

func TestCreateEmployeeValidation(t *testing.T) {
	h := NewHandler(nil, nil, nil)
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing name", `{"department":"인사팀","position":"사원","hireDate":"2025-03-01","password":"password1"}`, "name"},
		{"bad hire date", `{"name":"김민수","department":"인사팀","position":"사원","hireDate":"2025/03/01","password":"password1"}`, "hireDate"},
		{"bad gender", `{"name":"김민수","department":"인사팀","position":"사원","hireDate":"2025-03-01","gender":"M","password":"password1"}`, "gender"},
		{"bad role", `{"name":"김민수","department":"인사팀","position":"사원","hireDate":"2025-03-01","role":"root","password":"password1"}`, "role"},
		{"short password", `{"name":"김민수","department":"인사팀","position":"사원","hireDate":"2025-03-01","password":"short"}`, "password"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.handleCreateEmployee(rec, httptest.NewRequest(http.MethodPost, "/employees", bytes.NewBufferString(tc.body)))
			if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), `"field":"`+tc.field+`"`) {
				t.Fatalf("expected validation issue on %s, got %d %s", tc.field, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestListEmployeesRejectsUnknownStatus(t *testing.T) {
	h := NewHandler(nil, nil, nil)
	rec := httptest.NewRecorder()
	h.handleListEmployees(rec, httptest.NewRequest(http.MethodGet, "/employees?status=retired", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestFailIncludesSuggestion(t *testing.T) {
	h := NewHandler(nil, nil, nil)
	err := fmt.Errorf("resolve: %w", &core.LookupError{Field: "department", Value: "개발", Suggestion: "개발팀"})
	rec := httptest.NewRecorder()
	h.fail(rec, httptest.NewRequest(http.MethodPost, "/", nil), err)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), `"suggestion":"개발팀"`) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestFailStatusCodes(t *testing.T) {
	h := NewHandler(nil, nil, nil)
	tests := map[error]int{
		core.ErrEmployeeNotFound:    http.StatusNotFound,
		core.ErrDuplicateDepartment: http.StatusConflict,
		core.ErrDepartmentInUse:     http.StatusConflict,
		core.ErrAlreadyTerminated:   http.StatusConflict,
		core.ErrInvalidRole:         http.StatusBadRequest,
		errors.New("boom"):          http.StatusInternalServerError,
	}
	for err, want := range tests {
		rec := httptest.NewRecorder()
		h.fail(rec, httptest.NewRequest(http.MethodGet, "/", nil), err)
		if rec.Code != want {
			t.Fatalf("%v: expected %d, got %d", err, want, rec.Code)
		}
	}
}
