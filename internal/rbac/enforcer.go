package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Roles are intrinsic to the employee record (single tenant), so the policy
// set is fixed at startup instead of loaded per company from the database.
var policies = [][]string{
	{"employee", "leave", "create"},
	{"employee", "leave", "read"},
	{"employee", "claim", "create"},
	{"employee", "claim", "read"},
	{"employee", "balance", "read"},
	{"employee", "holiday", "read"},

	{"manager", "leave", "review"},
	{"manager", "claim", "review"},

	{"hr", "leave", "finalize"},
	{"hr", "claim", "finalize"},
	{"hr", "balance", "edit"},
	{"hr", "holiday", "manage"},
	{"hr", "employee", "manage"},
	{"hr", "job", "trigger"},
}

// Role inheritance: manager and hr keep the employee self-service surface.
var groupings = [][]string{
	{"manager", "employee"},
	{"hr", "employee"},
	{"hr", "manager"},
}

//go:generate mockgen -source=enforcer.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

func NewService() (Service, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range groupings {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(role, resource, action)
}
