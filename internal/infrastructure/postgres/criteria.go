package postgres

import (
	"fmt"
	"strings"

	"github.com/CardonaSantos/pos-ventas-api/internal/domain/criteria"
	"github.com/CardonaSantos/pos-ventas-api/pkg/textnorm"
)

// Pares de translate() para CONTAINS_FOLD: cada carácter acentuado de
// foldSrc se reemplaza por el de la misma posición en foldDst. Deben
// producir sobre la columna lo mismo que textnorm.Fold produce sobre el
// patrón; de lo contrario el contains pierde filas acentuadas.
const (
	foldSrc = "áàâäãéèêëíìîïóòôöõúùûüñç"
	foldDst = "aaaaaeeeeiiiiooooouuuunc"
)

// criteriaSQL acumula los argumentos posicionales mientras se traduce el
// árbol de predicados. Los nombres de campo vienen del código (nunca del
// request), solo los valores se parametrizan.
type criteriaSQL struct {
	args []any
}

func (c *criteriaSQL) placeholder(v any) string {
	c.args = append(c.args, v)
	return fmt.Sprintf("$%d", len(c.args))
}

func (c *criteriaSQL) predicate(p criteria.Predicate) string {
	switch {
	case p.Leaf != nil:
		return c.leaf(p.Leaf)
	case len(p.And) > 0:
		return c.group(p.And, " AND ")
	case len(p.Or) > 0:
		return c.group(p.Or, " OR ")
	}
	return "TRUE"
}

func (c *criteriaSQL) leaf(f *criteria.Filter) string {
	switch f.Operator {
	case criteria.OpContains:
		pattern := "%" + fmt.Sprint(f.Value) + "%"
		return fmt.Sprintf("%s ILIKE %s", f.Field, c.placeholder(pattern))
	case criteria.OpContainsFold:
		pattern := "%" + textnorm.Fold(fmt.Sprint(f.Value)) + "%"
		return fmt.Sprintf("translate(lower(%s), '%s', '%s') LIKE %s",
			f.Field, foldSrc, foldDst, c.placeholder(pattern))
	case criteria.OpIn:
		return fmt.Sprintf("%s = ANY(%s)", f.Field, c.placeholder(f.Value))
	default:
		return fmt.Sprintf("%s %s %s", f.Field, f.Operator, c.placeholder(f.Value))
	}
}

func (c *criteriaSQL) group(ps []criteria.Predicate, sep string) string {
	parts := make([]string, 0, len(ps))
	for _, p := range ps {
		parts = append(parts, c.predicate(p))
	}
	return "(" + strings.Join(parts, sep) + ")"
}

// buildWhere traduce el predicado a una cláusula WHERE parametrizada.
// Un predicado vacío produce "TRUE" (sin filtro).
func buildWhere(p criteria.Predicate) (string, []any) {
	b := &criteriaSQL{}
	clause := b.predicate(p)
	return clause, b.args
}

// buildTail arma ORDER BY / LIMIT / OFFSET de la consulta.
func buildTail(crit criteria.Criteria) string {
	var sb strings.Builder
	if len(crit.Orders) > 0 {
		parts := make([]string, 0, len(crit.Orders))
		for _, o := range crit.Orders {
			parts = append(parts, fmt.Sprintf("%s %s", o.Field, o.Direction))
		}
		sb.WriteString(" ORDER BY " + strings.Join(parts, ", "))
	}
	if crit.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", crit.Limit)
	}
	if crit.Offset > 0 {
		fmt.Fprintf(&sb, " OFFSET %d", crit.Offset)
	}
	return sb.String()
}
