package authz

import "fmt"

// RoleSeed is one built-in role definition.
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds defines the role matrix for the gift-shop back office.
// super is granted everything; operations runs the catalog and order desk;
// support can read and annotate orders.
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "super",
			Policies: []Policy{
				{Object: "/*", Action: "*"},
			},
		},
		{
			Role: "operations",
			Policies: []Policy{
				{Object: "/products", Action: "*"},
				{Object: "/products/:id", Action: "*"},
				{Object: "/categories", Action: "*"},
				{Object: "/categories/:id", Action: "*"},
				{Object: "/admin/products", Action: "GET"},
				{Object: "/admin/products/:id", Action: "GET"},
				{Object: "/admin/categories", Action: "GET"},
				{Object: "/orders", Action: "*"},
				{Object: "/orders/:id", Action: "*"},
				{Object: "/orders/:id/status", Action: "*"},
				{Object: "/orders/:id/additional-info", Action: "*"},
				{Object: "/orders/:id/tracking", Action: "GET"},
				{Object: "/admin/customers", Action: "GET"},
				{Object: "/admin/dashboard", Action: "GET"},
				{Object: "/admin/dashboard/trends", Action: "GET"},
				{Object: "/upload", Action: "POST"},
			},
		},
		{
			Role: "support",
			Policies: []Policy{
				{Object: "/orders", Action: "GET"},
				{Object: "/orders/:id", Action: "GET"},
				{Object: "/orders/:id/tracking", Action: "GET"},
				{Object: "/orders/:id/additional-info", Action: "PUT"},
				{Object: "/orders/:id/additional-info", Action: "DELETE"},
				{Object: "/admin/customers", Action: "GET"},
			},
		},
	}
}

// BootstrapBuiltinRoles seeds the built-in roles and their policies.
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := s.EnsureRole(seed.Role)
		if err != nil {
			return err
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
