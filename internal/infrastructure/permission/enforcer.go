// Package permission wires casbin role-based access control. Policies are
// role -> resource -> action triples persisted through the gorm adapter, so
// they live in the same database file as everything else.
package permission

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"helpdesk/internal/shared/logger"
)

type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

func NewEnforcer(db *gorm.DB, modelPath string, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(modelPath, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	return &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

func (e *Enforcer) Enforce(role string, resource string, action string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(role, resource, action)
	if err != nil {
		e.logger.Errorw("permission check failed",
			"error", err, "role", role, "resource", resource, "action", action)
		return false, fmt.Errorf("permission check failed: %w", err)
	}
	return allowed, nil
}

// InitDefaultPolicies seeds the ticket policies for the three roles. Adding
// an existing policy is a no-op in casbin, so seeding is idempotent.
func (e *Enforcer) InitDefaultPolicies() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	policies := [][]string{
		{"admin", "ticket", "read"},
		{"admin", "ticket", "create"},
		{"admin", "ticket", "start"},
		{"admin", "ticket", "conclude"},
		{"admin", "ticket", "comment"},
		{"admin", "user", "read"},
		{"admin", "user", "manage"},

		{"support", "ticket", "read"},
		{"support", "ticket", "start"},
		{"support", "ticket", "conclude"},
		{"support", "ticket", "comment"},

		{"client", "ticket", "read"},
		{"client", "ticket", "create"},
		{"client", "ticket", "return"},
		{"client", "ticket", "finalize"},
		{"client", "ticket", "comment"},
	}

	for _, policy := range policies {
		if _, err := e.enforcer.AddPolicy(policy); err != nil {
			e.logger.Errorw("failed to add permission policy",
				"error", err, "role", policy[0], "resource", policy[1], "action", policy[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
	}

	if err := e.enforcer.SavePolicy(); err != nil {
		return fmt.Errorf("failed to save policies: %w", err)
	}

	e.logger.Infow("default permission policies initialized")
	return nil
}
