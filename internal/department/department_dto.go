package department

type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ManagerID   string `json:"manager_id" binding:"omitempty,uuid"`
}

type UpdateDepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ManagerID   string `json:"manager_id" binding:"omitempty,uuid"`
}

type DepartmentResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ManagerID   string `json:"manager_id,omitempty"`
}

func mapToResponse(dept Department) DepartmentResponse {
	resp := DepartmentResponse{
		ID:   dept.ID.String(),
		Name: dept.Name,
	}
	if dept.Description != nil {
		resp.Description = *dept.Description
	}
	if dept.ManagerID != nil {
		resp.ManagerID = dept.ManagerID.String()
	}
	return resp
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}
