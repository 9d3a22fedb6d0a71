package customers

import (
	"time"

	"github.com/CardonaSantos/pos-ventas-api/internal/domain/entity"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain/repository"
	"github.com/CardonaSantos/pos-ventas-api/pkg/logger"
)

// Service creación de clientes mínimos durante una venta.
type Service struct {
	log *logger.Logger
}

// NewService construye el servicio de clientes.
func NewService(log *logger.Logger) *Service {
	return &Service{log: log}
}

// MinimalFields datos sueltos de cliente que llegan en el payload de la venta.
type MinimalFields struct {
	Name    string
	Surname string
	DPI     string
	NIT     string
	Phone   string
	Address string
}

// CreateMinimal crea un cliente con los campos disponibles y devuelve
// su id. Sin nombre no hay cliente: la venta sigue como consumidor
// final (id nulo) en lugar de fallar por datos incompletos.
func (s *Service) CreateMinimal(clients repository.ClientRepository, f MinimalFields) (*int64, error) {
	if f.Name == "" {
		return nil, nil
	}
	c := &entity.Client{
		Name:      f.Name,
		Surname:   f.Surname,
		DPI:       f.DPI,
		NIT:       f.NIT,
		Phone:     f.Phone,
		Address:   f.Address,
		CreatedAt: time.Now(),
	}
	if err := clients.Create(c); err != nil {
		return nil, err
	}
	return &c.ID, nil
}
