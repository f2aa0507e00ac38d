package domain

// UserRole é um tipo string para representar o papel do usuário no sistema.
type UserRole string

// Papéis emitidos pelo serviço de autenticação da clínica.
const (
	RoleAdmin        UserRole = "admin"
	RolePharmacist   UserRole = "pharmacist"
	RoleNurse        UserRole = "nurse"
	RoleDoctor       UserRole = "doctor"
	RoleReceptionist UserRole = "receptionist"
)

// Papéis autorizados por grupo de operação.
var (
	LedgerWriterRoles   = []UserRole{RoleAdmin, RolePharmacist, RoleNurse}
	CatalogManagerRoles = []UserRole{RoleAdmin, RolePharmacist}
	BatchRemoverRoles   = []UserRole{RoleAdmin}
)

// Principal é o usuário autenticado extraído do JWT.
type Principal struct {
	UserID  string
	StaffID *int64
	Roles   []UserRole
}

// HasAnyRole informa se o principal possui ao menos um dos papéis.
func (p Principal) HasAnyRole(roles ...UserRole) bool {
	for _, have := range p.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
