package entity

import "time"

// Product producto del catálogo.
type Product struct {
	ID          int64
	Name        string
	Description string
	Code        string // código interno / código de barras del producto
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Presentation presentación comercial de un producto (caja, blíster,
// unidad suelta). Tiene stock y precios propios.
type Presentation struct {
	ID        int64
	ProductID int64
	Name      string
	Barcode   string
	Factor    int64 // unidades base contenidas
	CreatedAt time.Time
}

// Branch sucursal de la cadena.
type Branch struct {
	ID      int64
	Name    string
	Address string
	Phone   string
}
