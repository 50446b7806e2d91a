package constants

// Club staff permissions
const (
	PermSuperAdminFull = "canchas.super-admin.full-permit"
	PermAdminFull      = "canchas.admin.full-permit"
	PermRecepcionFull  = "canchas.recepcion.full-permit"

	// Special permissions
	PermAny = "any"
)

// Permission groups for convenience
var (
	// AdminPermissions manage clubs, courts, staff and jornadas.
	AdminPermissions = []string{
		PermSuperAdminFull,
		PermAdminFull,
	}

	// DeskPermissions operate the booking ledger.
	DeskPermissions = []string{
		PermSuperAdminFull,
		PermAdminFull,
		PermRecepcionFull,
	}
)
