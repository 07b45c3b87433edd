package employee

type CreateEmployeeRequest struct {
	FullName         string `json:"full_name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Phone            string `json:"phone"`
	PositionTitle    string `json:"position_title"`
	DepartmentID     string `json:"department_id" binding:"omitempty,uuid"`
	HireDate         string `json:"hire_date" binding:"required"`
	EmployeeNumber   string `json:"employee_number"`
	EmploymentStatus string `json:"employment_status"`
}

type UpdateEmployeeRequest struct {
	FullName         string `json:"full_name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Phone            string `json:"phone"`
	PositionTitle    string `json:"position_title"`
	DepartmentID     string `json:"department_id" binding:"omitempty,uuid"`
	HireDate         string `json:"hire_date" binding:"required"`
	EmploymentStatus string `json:"employment_status"`
}

type EmployeeListRequest struct {
	DepartmentID     string `form:"department_id"`
	EmploymentStatus string `form:"employment_status"`
	Search           string `form:"search"`
}

type EmployeeDepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type EmployeeResponse struct {
	ID               string                      `json:"id"`
	EmployeeNumber   string                      `json:"employee_number"`
	FullName         string                      `json:"full_name"`
	Email            string                      `json:"email,omitempty"`
	Phone            string                      `json:"phone,omitempty"`
	PositionTitle    string                      `json:"position_title,omitempty"`
	DepartmentID     string                      `json:"department_id,omitempty"`
	Department       *EmployeeDepartmentResponse `json:"department,omitempty"`
	HireDate         string                      `json:"hire_date,omitempty"`
	ResignationDate  string                      `json:"resignation_date,omitempty"`
	EmploymentStatus string                      `json:"employment_status,omitempty"`
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:               empl.ID.String(),
		EmployeeNumber:   empl.EmployeeNumber,
		FullName:         empl.FullName,
		Email:            empl.Email,
		Phone:            empl.Phone,
		PositionTitle:    empl.PositionTitle,
		EmploymentStatus: empl.EmploymentStatus,
	}
	if !empl.HireDate.IsZero() {
		resp.HireDate = empl.HireDate.Format("2006-01-02")
	}
	if empl.ResignationDate != nil {
		resp.ResignationDate = empl.ResignationDate.Format("2006-01-02")
	}
	if empl.DepartmentID != nil {
		resp.DepartmentID = empl.DepartmentID.String()
	}
	if empl.Department != nil {
		resp.Department = &EmployeeDepartmentResponse{
			ID:   empl.Department.ID.String(),
			Name: empl.Department.Name,
		}
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
