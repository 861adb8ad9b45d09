package entity

// Customer representa un cliente del registro (titular de una cuenta con saldo).
type Customer struct {
	ID        string
	FirstName string
	LastName  string
	Phone     string
	Balance   float64
}

// FullName devuelve "Nombre Apellido".
func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
