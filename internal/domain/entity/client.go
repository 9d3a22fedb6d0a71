package entity

import "time"

// Client cliente de la tienda. Una venta sin cliente resuelto se
// registra como consumidor final ("CF") con ClientID nulo.
type Client struct {
	ID        int64
	Name      string
	Surname   string
	DPI       string // documento personal de identificación
	NIT       string
	Phone     string
	Address   string
	CreatedAt time.Time
}
