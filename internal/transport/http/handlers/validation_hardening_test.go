package handlers_test

import (
	"net/http"
	"testing"
)

func TestHighRiskEndpointsReturnValidationErrors(t *testing.T) {
	_, ts, cfg := startApp(t)
	client := ts.Client()
	adminToken := login(t, client, ts.URL, cfg.SeedAdminUsername, cfg.SeedAdminPassword)

	employeeResp := postJSONStatus(t, client, ts.URL+"/api/v1/employees", adminToken, map[string]any{
		"name":       "",
		"department": "개발팀",
		"position":   "사원",
		"hireDate":   "2025/03/02",
	}, http.StatusBadRequest)
	assertValidationErrorField(t, employeeResp, "name")
	assertValidationErrorField(t, employeeResp, "hireDate")

	unknownDept := postJSONStatus(t, client, ts.URL+"/api/v1/employees", adminToken, map[string]any{
		"name":       "검증",
		"department": "개발",
		"position":   "사원",
		"hireDate":   "2025-03-02",
	}, http.StatusBadRequest)
	assertValidationErrorField(t, unknownDept, "department")

	ratesResp := putJSONStatus(t, client, ts.URL+"/api/v1/payroll/rates", adminToken, map[string]any{
		"pension":    150,
		"health":     3.545,
		"care":       12.95,
		"employment": -1,
	}, http.StatusBadRequest)
	assertValidationErrorField(t, ratesResp, "pension")
	assertValidationErrorField(t, ratesResp, "employment")

	runResp := postJSONStatus(t, client, ts.URL+"/api/v1/payroll/runs", adminToken, map[string]any{
		"year":  2026,
		"month": 13,
	}, http.StatusBadRequest)
	assertValidationErrorField(t, runResp, "month")

	employeeID := createEmployee(t, client, ts.URL, adminToken, "Validate123!")
	employeeToken := login(t, client, ts.URL, employeeID, "Validate123!")
	leaveResp := postJSONStatus(t, client, ts.URL+"/api/v1/leave/requests", employeeToken, map[string]any{
		"type":      "출장",
		"startDate": "2026-05-04",
	}, http.StatusBadRequest)
	assertValidationErrorField(t, leaveResp, "destination")

	loginResp := postJSONStatus(t, client, ts.URL+"/api/v1/auth/login", "", map[string]any{
		"username": "",
		"password": "",
	}, http.StatusBadRequest)
	assertValidationErrorField(t, loginResp, "username")
	assertValidationErrorField(t, loginResp, "password")
}
