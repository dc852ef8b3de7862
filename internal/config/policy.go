package config

import "motorent-backoffice/internal/domain"

// Operation names a guarded API action. Routes declare the operation they
// perform and the auth middleware checks it against Policies.
type Operation string

const (
	OpPublic Operation = "public"

	OpEmployeeRead       Operation = "employees.read"
	OpEmployeeCreate     Operation = "employees.create"
	OpEmployeeAssignRole Operation = "employees.assign_role"

	OpCatalogRead  Operation = "catalog.read" // categories and price lists
	OpCatalogWrite Operation = "catalog.write"

	OpMotorbikeRead   Operation = "motorbikes.read"
	OpMotorbikeWrite  Operation = "motorbikes.write"
	OpMotorbikeStatus Operation = "motorbikes.status"
	OpMotorbikeImage  Operation = "motorbikes.image"

	OpCustomerRead  Operation = "customers.read"
	OpCustomerWrite Operation = "customers.write"

	OpDiscountRead  Operation = "discounts.read"
	OpDiscountWrite Operation = "discounts.write"

	OpContractRead     Operation = "contracts.read"
	OpContractCreate   Operation = "contracts.create"
	OpContractActivate Operation = "contracts.activate"
	OpContractCancel   Operation = "contracts.cancel"
	OpContractSettle   Operation = "contracts.settle"

	OpIncidentRead    Operation = "incidents.read"
	OpIncidentReport  Operation = "incidents.report"
	OpIncidentResolve Operation = "incidents.resolve"

	OpPaymentRead    Operation = "payments.read"
	OpPaymentProcess Operation = "payments.process"

	OpMaintenanceRead  Operation = "maintenances.read"
	OpMaintenanceWrite Operation = "maintenances.write"
)

var (
	allRoles   = []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleStaff}
	managersUp = []domain.Role{domain.RoleAdmin, domain.RoleManager}
	adminsOnly = []domain.Role{domain.RoleAdmin}
)

// Policies maps every guarded operation to the roles allowed to run it.
var Policies = map[Operation][]domain.Role{
	OpEmployeeRead:       managersUp,
	OpEmployeeCreate:     adminsOnly,
	OpEmployeeAssignRole: adminsOnly,

	OpCatalogRead:  allRoles,
	OpCatalogWrite: managersUp,

	OpMotorbikeRead:   allRoles,
	OpMotorbikeWrite:  managersUp,
	OpMotorbikeStatus: managersUp,
	OpMotorbikeImage:  managersUp,

	OpCustomerRead:  allRoles,
	OpCustomerWrite: allRoles,

	OpDiscountRead:  allRoles,
	OpDiscountWrite: managersUp,

	OpContractRead:     allRoles,
	OpContractCreate:   allRoles,
	OpContractActivate: allRoles,
	OpContractCancel:   allRoles,
	OpContractSettle:   allRoles,

	OpIncidentRead:    allRoles,
	OpIncidentReport:  allRoles,
	OpIncidentResolve: managersUp,

	OpPaymentRead:    allRoles,
	OpPaymentProcess: allRoles,

	OpMaintenanceRead:  allRoles,
	OpMaintenanceWrite: managersUp,
}

// IsPublic reports whether op needs no authentication.
func IsPublic(op Operation) bool {
	return op == OpPublic
}

// Allowed reports whether role may perform op. Unknown operations are
// denied.
func Allowed(op Operation, role domain.Role) bool {
	roles, ok := Policies[op]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
