package pieces

import "fmt"

// Catalog maps every board symbol to its piece type. It is filled once by
// NewCatalog and only read afterwards, so it can be shared between games.
type Catalog struct {
	types   []*PieceType
	symbols map[rune]*PieceType
	names   map[string]*PieceType
}

/*
	Builds each declaration in order and inserts it under both of its symbols.
	A piece claiming a symbol or a name that already belongs to another type is
	rejected as a whole. The returned catalog holds every piece that built cleanly; err
	is a *Report listing everything that did not.
*/
func NewCatalog(decls []Declaration) (*Catalog, error) {
	c := &Catalog{
		types:   make([]*PieceType, 0, len(decls)),
		symbols: make(map[rune]*PieceType, 2*len(decls)),
		names:   make(map[string]*PieceType, len(decls)),
	}

	report := &Report{}
	for _, decl := range decls {
		pt, err := Build(decl)
		if err != nil {
			report.merge(decl.Name, err)
			continue
		}
		if err := c.insert(pt); err != nil {
			report.add(decl.Name, "", err)
		}
	}

	return c, report.Err()
}

func (c *Catalog) insert(pt *PieceType) error {
	if _, ok := c.names[pt.Name]; ok {
		return fmt.Errorf("%w %q", ErrDuplicateName, pt.Name)
	}
	for _, s := range []rune{pt.White, pt.Black} {
		if owner, ok := c.symbols[s]; ok && owner != pt {
			return fmt.Errorf("%w %q already used by %q", ErrDuplicateSymbol, s, owner.Name)
		}
	}

	c.symbols[pt.White] = pt
	c.symbols[pt.Black] = pt
	c.types = append(c.types, pt)
	c.names[pt.Name] = pt
	return nil
}

func (c *Catalog) Lookup(symbol rune) (*PieceType, bool) {
	pt, ok := c.symbols[symbol]
	return pt, ok
}

func (c *Catalog) ByName(name string) (*PieceType, bool) {
	pt, ok := c.names[name]
	return pt, ok
}

// PromotionTarget resolves the type a piece promotes to.
func (c *Catalog) PromotionTarget(pt *PieceType) (*PieceType, bool) {
	if pt == nil || !pt.Promotable {
		return nil, false
	}
	return c.ByName(pt.PromotesTo)
}

// Pieces returns the piece types in declaration order.
func (c *Catalog) Pieces() []*PieceType {
	out := make([]*PieceType, len(c.types))
	copy(out, c.types)
	return out
}

// Symbols returns white then black symbol of every type, in declaration order.
func (c *Catalog) Symbols() string {
	out := make([]rune, 0, 2*len(c.types))
	for _, pt := range c.types {
		out = append(out, pt.White, pt.Black)
	}
	return string(out)
}

func (c *Catalog) Len() int {
	return len(c.types)
}
