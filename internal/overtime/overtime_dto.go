package overtime

import "time"

type CreateOvertimeRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
	Reason     string `json:"reason"`
}

type UpdateOvertimeRequest struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Reason    string `json:"reason"`
}

type OvertimeListRequest struct {
	EmployeeID string `form:"employee_id"`
	Status     string `form:"status"`
}

type ApprovedHoursRequest struct {
	EmployeeID string `form:"employee_id" binding:"required,uuid"`
	StartDate  string `form:"start_date" binding:"required"`
	EndDate    string `form:"end_date" binding:"required"`
}

type OvertimeResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	Hours        string  `json:"hours"`
	Reason       string  `json:"reason,omitempty"`
	Status       string  `json:"status"`
	ApprovedBy   *string `json:"approved_by,omitempty"`
	ApprovedAt   *string `json:"approved_at,omitempty"`
}

type ApprovedHoursResponse struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	TotalHours string `json:"total_hours"`
}

func mapToResponse(o Overtime) OvertimeResponse {
	resp := OvertimeResponse{
		ID:         o.ID.String(),
		EmployeeID: o.EmployeeID.String(),
		StartTime:  o.StartTime.Format("2006-01-02 15:04:05"),
		EndTime:    o.EndTime.Format("2006-01-02 15:04:05"),
		Hours:      o.Hours().StringFixed(2),
		Reason:     o.Reason,
		Status:     o.Status,
	}
	if o.Employee != nil {
		resp.EmployeeName = o.Employee.FullName
	}
	if o.ApprovedBy != nil {
		v := o.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if o.ApprovedAt != nil {
		v := o.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}

func mapToListResponse(overtimes []Overtime) []OvertimeResponse {
	resp := make([]OvertimeResponse, len(overtimes))
	for i, o := range overtimes {
		resp[i] = mapToResponse(o)
	}
	return resp
}
