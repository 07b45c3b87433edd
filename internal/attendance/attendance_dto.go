package attendance

import "time"

type CreateAttendanceRuleRequest struct {
	Name                       string   `json:"name" binding:"required,max=120"`
	WorkStartTime              string   `json:"work_start_time" binding:"required"`
	WorkEndTime                string   `json:"work_end_time" binding:"required"`
	LateThresholdMinutes       *int     `json:"late_threshold_minutes"`
	EarlyLeaveThresholdMinutes *int     `json:"early_leave_threshold_minutes"`
	OvertimeMinimumMinutes     *int     `json:"overtime_minimum_minutes"`
	Priority                   int      `json:"priority"`
	RuleType                   string   `json:"rule_type"`
	DepartmentID               *string  `json:"department_id"`
	EffectiveStartDate         string   `json:"effective_start_date" binding:"required"`
	EffectiveEndDate           *string  `json:"effective_end_date"`
	IsDefault                  bool     `json:"is_default"`
	EmployeeIDs                []string `json:"employee_ids"`
}

type UpdateAttendanceRuleRequest struct {
	Name                       string  `json:"name" binding:"required,max=120"`
	WorkStartTime              string  `json:"work_start_time" binding:"required"`
	WorkEndTime                string  `json:"work_end_time" binding:"required"`
	LateThresholdMinutes       *int    `json:"late_threshold_minutes"`
	EarlyLeaveThresholdMinutes *int    `json:"early_leave_threshold_minutes"`
	OvertimeMinimumMinutes     *int    `json:"overtime_minimum_minutes"`
	Priority                   int     `json:"priority"`
	RuleType                   string  `json:"rule_type"`
	DepartmentID               *string `json:"department_id"`
	EffectiveStartDate         string  `json:"effective_start_date" binding:"required"`
	EffectiveEndDate           *string `json:"effective_end_date"`
}

type AssignEmployeesRequest struct {
	EmployeeIDs []string `json:"employee_ids" binding:"required"`
}

type AttendanceRuleResponse struct {
	ID                         string   `json:"id"`
	Name                       string   `json:"name"`
	WorkStartTime              string   `json:"work_start_time"`
	WorkEndTime                string   `json:"work_end_time"`
	LateThresholdMinutes       int      `json:"late_threshold_minutes"`
	EarlyLeaveThresholdMinutes int      `json:"early_leave_threshold_minutes"`
	OvertimeMinimumMinutes     int      `json:"overtime_minimum_minutes"`
	Priority                   int      `json:"priority"`
	RuleType                   string   `json:"rule_type"`
	DepartmentID               *string  `json:"department_id,omitempty"`
	EffectiveStartDate         string   `json:"effective_start_date"`
	EffectiveEndDate           *string  `json:"effective_end_date,omitempty"`
	IsDefault                  bool     `json:"is_default"`
	EmployeeIDs                []string `json:"employee_ids,omitempty"`
}

type ResolveRuleRequest struct {
	EmployeeID string `form:"employee_id" binding:"required"`
	Date       string `form:"date"`
}

type CheckInRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Timestamp  string `json:"timestamp"`
}

type CheckOutRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Timestamp  string `json:"timestamp"`
}

type CreateRecordRequest struct {
	EmployeeID   string  `json:"employee_id" binding:"required"`
	Date         string  `json:"date" binding:"required"`
	CheckInTime  *string `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time"`
	Notes        *string `json:"notes"`
}

type RecordListRequest struct {
	EmployeeID string `form:"employee_id"`
	Status     string `form:"status"`
	DateFrom   string `form:"date_from"`
	DateTo     string `form:"date_to"`
}

type AttendanceRecordResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	WorkDate     string  `json:"work_date"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	Status       string  `json:"status"`
	Notes        *string `json:"notes,omitempty"`
}

func mapRuleToResponse(rule AttendanceRule) AttendanceRuleResponse {
	res := AttendanceRuleResponse{
		ID:                         rule.ID.String(),
		Name:                       rule.Name,
		WorkStartTime:              rule.WorkStartTime,
		WorkEndTime:                rule.WorkEndTime,
		LateThresholdMinutes:       rule.LateThresholdMinutes,
		EarlyLeaveThresholdMinutes: rule.EarlyLeaveThresholdMinutes,
		OvertimeMinimumMinutes:     rule.OvertimeMinimumMinutes,
		Priority:                   rule.Priority,
		RuleType:                   rule.RuleType,
		EffectiveStartDate:         rule.EffectiveStartDate.Format("2006-01-02"),
		IsDefault:                  rule.IsDefault,
	}
	if rule.DepartmentID != nil {
		id := rule.DepartmentID.String()
		res.DepartmentID = &id
	}
	if rule.EffectiveEndDate != nil {
		end := rule.EffectiveEndDate.Format("2006-01-02")
		res.EffectiveEndDate = &end
	}
	for _, e := range rule.Employees {
		res.EmployeeIDs = append(res.EmployeeIDs, e.ID.String())
	}
	return res
}

func mapRulesToResponse(rules []AttendanceRule) []AttendanceRuleResponse {
	res := make([]AttendanceRuleResponse, len(rules))
	for i, rule := range rules {
		res[i] = mapRuleToResponse(rule)
	}
	return res
}

func mapRecordToResponse(record AttendanceRecord) AttendanceRecordResponse {
	res := AttendanceRecordResponse{
		ID:         record.ID.String(),
		EmployeeID: record.EmployeeID.String(),
		WorkDate:   record.WorkDate.Format("2006-01-02"),
		Status:     record.Status,
		Notes:      record.Notes,
	}
	if record.Employee != nil {
		res.EmployeeName = record.Employee.FullName
	}
	if record.CheckInTime != nil {
		in := record.CheckInTime.Format(time.RFC3339)
		res.CheckInTime = &in
	}
	if record.CheckOutTime != nil {
		out := record.CheckOutTime.Format(time.RFC3339)
		res.CheckOutTime = &out
	}
	return res
}

func mapRecordsToResponse(records []AttendanceRecord) []AttendanceRecordResponse {
	res := make([]AttendanceRecordResponse, len(records))
	for i, record := range records {
		res[i] = mapRecordToResponse(record)
	}
	return res
}
