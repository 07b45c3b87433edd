package salarystructure

type CreateSalaryStructureRequest struct {
	Name               string  `json:"name" binding:"required,max=120"`
	BasicSalary        string  `json:"basic_salary" binding:"required"`
	HousingAllowance   string  `json:"housing_allowance"`
	TransportAllowance string  `json:"transport_allowance"`
	MealAllowance      string  `json:"meal_allowance"`
	EffectiveDate      string  `json:"effective_date" binding:"required"`
	Description        *string `json:"description"`
}

type UpdateSalaryStructureRequest struct {
	Name               string  `json:"name" binding:"required,max=120"`
	BasicSalary        string  `json:"basic_salary" binding:"required"`
	HousingAllowance   string  `json:"housing_allowance"`
	TransportAllowance string  `json:"transport_allowance"`
	MealAllowance      string  `json:"meal_allowance"`
	EffectiveDate      string  `json:"effective_date" binding:"required"`
	Description        *string `json:"description"`
}

type SalaryStructureResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	BasicSalary        string  `json:"basic_salary"`
	HousingAllowance   string  `json:"housing_allowance"`
	TransportAllowance string  `json:"transport_allowance"`
	MealAllowance      string  `json:"meal_allowance"`
	TotalAllowances    string  `json:"total_allowances"`
	GrossSalary        string  `json:"gross_salary"`
	EffectiveDate      string  `json:"effective_date"`
	Description        *string `json:"description,omitempty"`
}

type CreateAssignmentRequest struct {
	SalaryStructureID string  `json:"salary_structure_id" binding:"required"`
	EmployeeID        *string `json:"employee_id"`
	DepartmentID      *string `json:"department_id"`
	IsDefault         bool    `json:"is_default"`
	EffectiveDate     string  `json:"effective_date" binding:"required"`
	ExpiryDate        *string `json:"expiry_date"`
}

type UpdateAssignmentRequest struct {
	SalaryStructureID string  `json:"salary_structure_id" binding:"required"`
	EffectiveDate     string  `json:"effective_date" binding:"required"`
	ExpiryDate        *string `json:"expiry_date"`
	IsActive          *bool   `json:"is_active"`
}

type AssignmentResponse struct {
	ID                string                   `json:"id"`
	SalaryStructureID string                   `json:"salary_structure_id"`
	SalaryStructure   *SalaryStructureResponse `json:"salary_structure,omitempty"`
	Scope             string                   `json:"scope"`
	EmployeeID        *string                  `json:"employee_id,omitempty"`
	DepartmentID      *string                  `json:"department_id,omitempty"`
	IsDefault         bool                     `json:"is_default"`
	EffectiveDate     string                   `json:"effective_date"`
	ExpiryDate        *string                  `json:"expiry_date,omitempty"`
	IsActive          bool                     `json:"is_active"`
}

type ResolveAssignmentRequest struct {
	EmployeeID string `form:"employee_id" binding:"required"`
	Date       string `form:"date"`
}

func mapStructureToResponse(structure SalaryStructure) SalaryStructureResponse {
	return SalaryStructureResponse{
		ID:                 structure.ID.String(),
		Name:               structure.Name,
		BasicSalary:        structure.BasicSalary.StringFixed(2),
		HousingAllowance:   structure.HousingAllowance.StringFixed(2),
		TransportAllowance: structure.TransportAllowance.StringFixed(2),
		MealAllowance:      structure.MealAllowance.StringFixed(2),
		TotalAllowances:    structure.TotalAllowances().StringFixed(2),
		GrossSalary:        structure.BasicSalary.Add(structure.TotalAllowances()).StringFixed(2),
		EffectiveDate:      structure.EffectiveDate.Format("2006-01-02"),
		Description:        structure.Description,
	}
}

func mapStructuresToResponse(structures []SalaryStructure) []SalaryStructureResponse {
	res := make([]SalaryStructureResponse, len(structures))
	for i, structure := range structures {
		res[i] = mapStructureToResponse(structure)
	}
	return res
}

func mapAssignmentToResponse(assignment SalaryStructureAssignment) AssignmentResponse {
	res := AssignmentResponse{
		ID:                assignment.ID.String(),
		SalaryStructureID: assignment.SalaryStructureID.String(),
		Scope:             assignment.Scope().String(),
		IsDefault:         assignment.IsDefault,
		EffectiveDate:     assignment.EffectiveDate.Format("2006-01-02"),
		IsActive:          assignment.IsActive,
	}
	if assignment.SalaryStructure != nil {
		structure := mapStructureToResponse(*assignment.SalaryStructure)
		res.SalaryStructure = &structure
	}
	if assignment.EmployeeID != nil {
		id := assignment.EmployeeID.String()
		res.EmployeeID = &id
	}
	if assignment.DepartmentID != nil {
		id := assignment.DepartmentID.String()
		res.DepartmentID = &id
	}
	if assignment.ExpiryDate != nil {
		expiry := assignment.ExpiryDate.Format("2006-01-02")
		res.ExpiryDate = &expiry
	}
	return res
}

func mapAssignmentsToResponse(assignments []SalaryStructureAssignment) []AssignmentResponse {
	res := make([]AssignmentResponse, len(assignments))
	for i, assignment := range assignments {
		res[i] = mapAssignmentToResponse(assignment)
	}
	return res
}
