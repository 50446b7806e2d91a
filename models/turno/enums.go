package turno

// Estado is the lifecycle state of a turno.
type Estado string

const (
	EstadoPendiente  Estado = "pendiente"
	EstadoConfirmado Estado = "confirmado"
	EstadoCompletado Estado = "completado"
	EstadoCancelado  Estado = "cancelado"
)

// transitions lists the allowed next states. Terminal states have none.
var transitions = map[Estado][]Estado{
	EstadoPendiente:  {EstadoConfirmado, EstadoCancelado},
	EstadoConfirmado: {EstadoCompletado, EstadoCancelado},
}

func (e Estado) String() string {
	return string(e)
}

func (e Estado) IsValid() bool {
	switch e {
	case EstadoPendiente, EstadoConfirmado, EstadoCompletado, EstadoCancelado:
		return true
	default:
		return false
	}
}

// IsTerminal returns true for completado and cancelado.
func (e Estado) IsTerminal() bool {
	return e == EstadoCompletado || e == EstadoCancelado
}

// CanTransitionTo reports whether e -> to is an allowed transition.
func (e Estado) CanTransitionTo(to Estado) bool {
	for _, next := range transitions[e] {
		if next == to {
			return true
		}
	}
	return false
}

// CanBeModified returns true while staff and court may still change.
func (e Estado) CanBeModified() bool {
	return e.IsValid() && !e.IsTerminal()
}

// GetAllEstados returns all valid estados
func GetAllEstados() []Estado {
	return []Estado{
		EstadoPendiente,
		EstadoConfirmado,
		EstadoCompletado,
		EstadoCancelado,
	}
}
