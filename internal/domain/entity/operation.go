package entity

import (
	"fmt"
	"time"
)

// OperationKind tipo de operación registrada en el historial reciente del registro.
type OperationKind string

const (
	OperationAdd    OperationKind = "ADD"
	OperationRemove OperationKind = "REMOVE"
	OperationLookup OperationKind = "LOOKUP"
)

// Operation es una entrada inmutable del historial reciente (en memoria) del registro.
type Operation struct {
	Kind        OperationKind
	CustomerID  string
	Description string
	Timestamp   time.Time
}

// String formato legible: [fecha] TIPO - Cliente: id - descripción.
func (o Operation) String() string {
	return fmt.Sprintf("[%s] %s - Cliente: %s - %s",
		o.Timestamp.Format(time.DateTime), o.Kind, o.CustomerID, o.Description)
}
