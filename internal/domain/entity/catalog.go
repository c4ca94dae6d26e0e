package entity

import "time"

// StockCategory agrupa ítems de inventario (carnes, lácteos, licores...).
type StockCategory struct {
	ID          string
	BranchID    string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Supplier proveedor al que se emiten órdenes de compra.
type Supplier struct {
	ID            string
	BranchID      string
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
