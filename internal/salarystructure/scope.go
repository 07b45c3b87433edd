package salarystructure

import "github.com/google/uuid"

// ScopeKind orders the resolution precedence: employee beats department
// beats global. The numeric order is relied on nowhere; resolution iterates
// scopes explicitly.
type ScopeKind int

const (
	ScopeEmployee ScopeKind = iota
	ScopeDepartment
	ScopeGlobal
)

// Scope is the tagged variant an assignment binds to: exactly one of an
// employee, a department, or the global default.
type Scope struct {
	Kind ScopeKind
	ID   uuid.UUID // zero for ScopeGlobal
}

func EmployeeScope(id uuid.UUID) Scope {
	return Scope{Kind: ScopeEmployee, ID: id}
}

func DepartmentScope(id uuid.UUID) Scope {
	return Scope{Kind: ScopeDepartment, ID: id}
}

func GlobalScope() Scope {
	return Scope{Kind: ScopeGlobal}
}

func (s Scope) String() string {
	switch s.Kind {
	case ScopeEmployee:
		return "employee:" + s.ID.String()
	case ScopeDepartment:
		return "department:" + s.ID.String()
	default:
		return "global"
	}
}
