package leave

import "time"

type CreateLeaveRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	LeaveType  string `json:"leave_type" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Reason     string `json:"reason"`
}

type RejectLeaveRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required"`
}

type LeaveListRequest struct {
	EmployeeID string `form:"employee_id"`
	Status     string `form:"status"`
}

type LeaveResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name,omitempty"`
	LeaveType       string  `json:"leave_type"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	TotalDays       int     `json:"total_days"`
	Reason          string  `json:"reason,omitempty"`
	Status          string  `json:"status"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		TotalDays:  l.TotalDays,
		Reason:     l.Reason,
		Status:     l.Status,
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.FullName
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	resp.RejectionReason = l.RejectionReason
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
