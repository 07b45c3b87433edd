package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadPolicy() error
	Enforce(employeeID, resource, action string) (bool, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	logger   *zap.Logger
	mu       sync.Mutex
}

func NewService(repo Repository, enforcer *casbin.Enforcer) Service {
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   zap.L().Named("rbac.service"),
	}
}

func (s *service) LoadPolicy() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadPolicyUnlocked()
}

func (s *service) loadPolicyUnlocked() error {
	s.enforcer.ClearPolicy()

	employeeRoles, err := s.repo.GetEmployeeRoles()
	if err != nil {
		return err
	}
	for _, er := range employeeRoles {
		if _, err := s.enforcer.AddGroupingPolicy(er.EmployeeID, er.RoleID); err != nil {
			return err
		}
	}

	rolePerms, err := s.repo.GetRolePermissions()
	if err != nil {
		return err
	}
	for _, rp := range rolePerms {
		if _, err := s.enforcer.AddPolicy(rp.RoleID, rp.Resource, rp.Action); err != nil {
			return err
		}
	}

	s.logger.Debug("rbac policy loaded",
		zap.Int("employee_roles", len(employeeRoles)),
		zap.Int("role_permissions", len(rolePerms)),
	)

	return nil
}

func (s *service) Enforce(employeeID, resource, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// reload on every check: role edits take effect immediately
	if err := s.loadPolicyUnlocked(); err != nil {
		return false, err
	}

	allowed, err := s.enforcer.Enforce(employeeID, resource, action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("employee_id", employeeID),
			zap.String("resource", resource),
			zap.String("action", action),
			zap.Error(err),
		)
		return false, err
	}

	return allowed, nil
}
