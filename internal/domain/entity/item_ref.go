package entity

// Tipos de entidad vendible.
const (
	ItemKindProduct      = "PRODUCT"
	ItemKindPresentation = "PRESENTATION"
)

// ItemRef identifica la entidad vendida: un producto o una presentación
// (exactamente uno de los dos). Para presentaciones conserva el producto
// dueño. Es comparable, por lo que sirve como llave de mapas al
// consolidar líneas y agrupar snapshots, sin llaves de texto concatenado.
type ItemRef struct {
	ProductID      int64
	PresentationID int64 // 0 = línea de producto simple
}

// ProductRef referencia a un producto simple.
func ProductRef(productID int64) ItemRef {
	return ItemRef{ProductID: productID}
}

// PresentationRef referencia a una presentación y su producto dueño.
func PresentationRef(presentationID, ownerProductID int64) ItemRef {
	return ItemRef{ProductID: ownerProductID, PresentationID: presentationID}
}

// IsPresentation indica si la referencia apunta a una presentación.
func (r ItemRef) IsPresentation() bool { return r.PresentationID != 0 }

// EntityID devuelve el id de la entidad referida: la presentación si la
// hay, el producto en caso contrario.
func (r ItemRef) EntityID() int64 {
	if r.IsPresentation() {
		return r.PresentationID
	}
	return r.ProductID
}

// Kind devuelve el tipo de entidad (PRODUCT o PRESENTATION).
func (r ItemRef) Kind() string {
	if r.IsPresentation() {
		return ItemKindPresentation
	}
	return ItemKindProduct
}
