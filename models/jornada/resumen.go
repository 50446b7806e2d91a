package jornada

import (
	"fmt"
	canchaModel "gestor-turnos/models/cancha"
	turnoModel "gestor-turnos/models/turno"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// TurnoResumen is one entry of datos_turnos. The JSON keys are a
// compatibility surface: rows written years ago are read with this type.
type TurnoResumen struct {
	TurnoID       uint      `json:"turnoId" validate:"required"`
	NumeroCancha  int       `json:"numeroCancha" validate:"gte=0"`
	Cancha        string    `json:"cancha" validate:"required"`
	ClienteNombre string    `json:"clienteNombre" validate:"required"`
	Estado        string    `json:"estado" validate:"required,oneof=pendiente confirmado completado cancelado"`
	HoraInicio    time.Time `json:"horaInicio" validate:"required"`
	Caddie        *string   `json:"caddie,omitempty" validate:"omitempty,min=1"`
	Boleador      *string   `json:"boleador,omitempty" validate:"omitempty,min=1"`
}

// Fila is a ledger turno together with its resolved court. Cancha is nil
// when the court could not be resolved.
type Fila struct {
	Turno  *turnoModel.Turno
	Cancha *canchaModel.Cancha
}

// FieldMapping ties one key of datos_turnos to the ledger column it is
// read from. Project writes the key from a ledger row; Value renders the
// key of a record for comparison.
type FieldMapping struct {
	Key      string
	Column   string
	Identity bool
	Project  func(f Fila, r *TurnoResumen)
	Value    func(r TurnoResumen) string
}

// FromCancha reports whether the key is read from the resolved court.
func (m FieldMapping) FromCancha() bool {
	return strings.HasPrefix(m.Column, "canchas.")
}

// Mapping is the only place that knows how ledger columns become snapshot
// keys. Projection and reconciliation both walk it.
var Mapping = []FieldMapping{
	{
		Key:      "turnoId",
		Column:   "turnos.id",
		Identity: true,
		Project:  func(f Fila, r *TurnoResumen) { r.TurnoID = f.Turno.ID },
		Value:    func(r TurnoResumen) string { return strconv.FormatUint(uint64(r.TurnoID), 10) },
	},
	{
		Key:    "numeroCancha",
		Column: "canchas.numero",
		Project: func(f Fila, r *TurnoResumen) {
			if f.Cancha != nil {
				r.NumeroCancha = f.Cancha.Numero
			}
		},
		Value: func(r TurnoResumen) string { return strconv.Itoa(r.NumeroCancha) },
	},
	{
		Key:    "cancha",
		Column: "canchas.nombre",
		Project: func(f Fila, r *TurnoResumen) {
			if f.Cancha != nil {
				r.Cancha = f.Cancha.Nombre
			}
		},
		Value: func(r TurnoResumen) string { return r.Cancha },
	},
	{
		Key:     "clienteNombre",
		Column:  "turnos.cliente_nombre",
		Project: func(f Fila, r *TurnoResumen) { r.ClienteNombre = f.Turno.ClienteNombre },
		Value:   func(r TurnoResumen) string { return r.ClienteNombre },
	},
	{
		Key:     "estado",
		Column:  "turnos.estado",
		Project: func(f Fila, r *TurnoResumen) { r.Estado = f.Turno.Estado.String() },
		Value:   func(r TurnoResumen) string { return r.Estado },
	},
	{
		Key:     "horaInicio",
		Column:  "turnos.hora_inicio",
		Project: func(f Fila, r *TurnoResumen) { r.HoraInicio = f.Turno.HoraInicio },
		Value: func(r TurnoResumen) string {
			if r.HoraInicio.IsZero() {
				return ""
			}
			return r.HoraInicio.UTC().Format(time.RFC3339)
		},
	},
	{
		Key:    "caddie",
		Column: "caddies.nombre",
		Project: func(f Fila, r *TurnoResumen) {
			if f.Turno.Caddie != nil {
				nombre := f.Turno.Caddie.Nombre
				r.Caddie = &nombre
			}
		},
		Value: func(r TurnoResumen) string { return deref(r.Caddie) },
	},
	{
		Key:    "boleador",
		Column: "boleadores.nombre",
		Project: func(f Fila, r *TurnoResumen) {
			if f.Turno.Boleador != nil {
				nombre := f.Turno.Boleador.Nombre
				r.Boleador = &nombre
			}
		},
		Value: func(r TurnoResumen) string { return deref(r.Boleador) },
	},
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Project converts a ledger row into a snapshot record.
func Project(f Fila) TurnoResumen {
	var r TurnoResumen
	for _, m := range Mapping {
		m.Project(f, &r)
	}
	return r
}

var validate = validator.New()

// ValidateDocumento checks every record before it is written. Records must
// be complete, unique per turno and ordered by start time.
func ValidateDocumento(datos []TurnoResumen) error {
	seen := make(map[uint]bool, len(datos))
	for i, r := range datos {
		if err := validate.Struct(r); err != nil {
			return fmt.Errorf("datos_turnos[%d] (turno %d): %w", i, r.TurnoID, err)
		}
		if seen[r.TurnoID] {
			return fmt.Errorf("datos_turnos[%d]: turno %d appears twice", i, r.TurnoID)
		}
		seen[r.TurnoID] = true
		if i > 0 && r.HoraInicio.Before(datos[i-1].HoraInicio) {
			return fmt.Errorf("datos_turnos[%d]: turno %d out of start-time order", i, r.TurnoID)
		}
	}
	return nil
}
