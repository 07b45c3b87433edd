package payroll

import "time"

type GenerateRequest struct {
	EmployeeID    string `json:"employee_id" binding:"required"`
	Year          int    `json:"year" binding:"required"`
	Month         int    `json:"month" binding:"required"`
	OvertimeHours string `json:"overtime_hours"`
	Bonus         string `json:"bonus"`
	Deductions    string `json:"deductions"`
}

type GenerateBatchRequest struct {
	Year        int      `json:"year" binding:"required"`
	Month       int      `json:"month" binding:"required"`
	EmployeeIDs []string `json:"employee_ids" binding:"required"`
}

type UpdateRequest struct {
	OvertimeHours string `json:"overtime_hours"`
	Bonus         string `json:"bonus"`
	Deductions    string `json:"deductions"`
}

type RecordListRequest struct {
	EmployeeID    string `form:"employee_id"`
	Year          int    `form:"year"`
	Month         int    `form:"month"`
	PaymentStatus string `form:"payment_status"`
}

type SalaryRecordResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name,omitempty"`
	EmployeeNumber string  `json:"employee_number,omitempty"`
	Year           int     `json:"year"`
	Month          int     `json:"month"`
	BasicSalary    string  `json:"basic_salary"`
	Allowances     string  `json:"allowances"`
	OvertimePay    string  `json:"overtime_pay"`
	Bonus          string  `json:"bonus"`
	Deductions     string  `json:"deductions"`
	GrossSalary    string  `json:"gross_salary"`
	Tax            string  `json:"tax"`
	NetSalary      string  `json:"net_salary"`
	PaymentStatus  string  `json:"payment_status"`
	PaidAt         *string `json:"paid_at,omitempty"`
}

type BatchFailure struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

type BatchResultResponse struct {
	Success []SalaryRecordResponse `json:"success"`
	Failed  []BatchFailure         `json:"failed"`
}

func mapRecordToResponse(record SalaryRecord) SalaryRecordResponse {
	res := SalaryRecordResponse{
		ID:            record.ID.String(),
		EmployeeID:    record.EmployeeID.String(),
		Year:          record.Year,
		Month:         record.Month,
		BasicSalary:   record.BasicSalary.StringFixed(2),
		Allowances:    record.Allowances.StringFixed(2),
		OvertimePay:   record.OvertimePay.StringFixed(2),
		Bonus:         record.Bonus.StringFixed(2),
		Deductions:    record.Deductions.StringFixed(2),
		GrossSalary:   record.GrossSalary.StringFixed(2),
		Tax:           record.Tax.StringFixed(2),
		NetSalary:     record.NetSalary.StringFixed(2),
		PaymentStatus: record.PaymentStatus,
	}
	if record.Employee != nil {
		res.EmployeeName = record.Employee.FullName
		res.EmployeeNumber = record.Employee.EmployeeNumber
	}
	if record.PaidAt != nil {
		paidAt := record.PaidAt.Format(time.RFC3339)
		res.PaidAt = &paidAt
	}
	return res
}

func mapRecordsToResponse(records []SalaryRecord) []SalaryRecordResponse {
	res := make([]SalaryRecordResponse, len(records))
	for i, record := range records {
		res[i] = mapRecordToResponse(record)
	}
	return res
}
