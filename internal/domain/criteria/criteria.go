package criteria

// Paquete criteria: filtros declarativos para consultas de listado.
// En lugar de armar objetos de consulta mutables con condicionales
// anidados, los handlers componen un árbol de predicados etiquetados
// (comparación, rango, contains, grupos AND/OR) que la capa de
// almacenamiento traduce una sola vez a SQL parametrizado.

// Operator operadores de comparación soportados en un predicado hoja.
type Operator string

const (
	OpEqual        Operator = "="
	OpNotEqual     Operator = "!="
	OpGreater      Operator = ">"
	OpGreaterEqual Operator = ">="
	OpLess         Operator = "<"
	OpLessEqual    Operator = "<="
	OpContains     Operator = "CONTAINS"      // coincidencia parcial, sin distinguir mayúsculas
	OpContainsFold Operator = "CONTAINS_FOLD" // como CONTAINS, ignorando además acentos en ambos lados
	OpIn           Operator = "IN"
)

// Filter predicado hoja: campo, operador y valor.
type Filter struct {
	Field    string
	Operator Operator
	Value    any
}

// Predicate nodo del árbol de filtros: o es una hoja (Filter) o un
// grupo AND/OR de sub-predicados. Exactamente uno de los tres campos
// está poblado; el valor cero es el predicado vacío (sin filtro).
type Predicate struct {
	Leaf *Filter
	And  []Predicate
	Or   []Predicate
}

// IsEmpty indica si el predicado no aporta condiciones.
func (p Predicate) IsEmpty() bool {
	return p.Leaf == nil && len(p.And) == 0 && len(p.Or) == 0
}

// Where crea un predicado hoja.
func Where(field string, op Operator, value any) Predicate {
	return Predicate{Leaf: &Filter{Field: field, Operator: op, Value: value}}
}

// And agrupa predicados con conjunción; los vacíos se descartan.
func And(ps ...Predicate) Predicate {
	kept := compact(ps)
	switch len(kept) {
	case 0:
		return Predicate{}
	case 1:
		return kept[0]
	}
	return Predicate{And: kept}
}

// Or agrupa predicados con disyunción; los vacíos se descartan.
func Or(ps ...Predicate) Predicate {
	kept := compact(ps)
	switch len(kept) {
	case 0:
		return Predicate{}
	case 1:
		return kept[0]
	}
	return Predicate{Or: kept}
}

// Range predicado de rango semiabierto [from, to). Cualquiera de los
// extremos puede ser nil para dejar el lado abierto.
func Range(field string, from, to any) Predicate {
	var parts []Predicate
	if from != nil {
		parts = append(parts, Where(field, OpGreaterEqual, from))
	}
	if to != nil {
		parts = append(parts, Where(field, OpLess, to))
	}
	return And(parts...)
}

func compact(ps []Predicate) []Predicate {
	var kept []Predicate
	for _, p := range ps {
		if !p.IsEmpty() {
			kept = append(kept, p)
		}
	}
	return kept
}

// Direction sentido de ordenamiento.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Order ordenamiento por un campo.
type Order struct {
	Field     string
	Direction Direction
}

// Criteria consulta declarativa completa: filtro, orden y paginación.
type Criteria struct {
	Filter Predicate
	Orders []Order
	Limit  int // 0 = sin límite
	Offset int
}
