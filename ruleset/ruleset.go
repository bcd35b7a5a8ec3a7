package ruleset

import (
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/garlicgarrison/chess-variant-rules/board"
	"github.com/garlicgarrison/chess-variant-rules/config"
	"github.com/garlicgarrison/chess-variant-rules/pieces"
	guuid "github.com/google/uuid"
)

var (
	ErrDuplicatePosition = errors.New("duplicate position name")
	ErrUnknownRuleset    = errors.New("unknown ruleset")
)

// Ruleset is a catalog together with its named starting placements. It is
// never modified once assembled.
type Ruleset struct {
	ID         guuid.UUID
	Name       string
	Catalog    *pieces.Catalog
	Placements board.Placements
	positions  []string
}

// Positions returns the placement names in the order they were declared.
func (rs *Ruleset) Positions() []string {
	out := make([]string, len(rs.positions))
	copy(out, rs.positions)
	return out
}

/*
	Builds the catalog and the placements of cfg. Problems are collected rather
	than returned one at a time: err joins the catalog report with every bad
	position, and the returned ruleset holds whatever was valid. Every
	placement is checked against the catalog.
*/
func Assemble(name string, cfg *config.Ruleset) (*Ruleset, error) {
	decls := make([]pieces.Declaration, 0, len(cfg.Pieces))
	for _, p := range cfg.Pieces {
		decls = append(decls, pieces.Declaration{
			Name:       p.Name,
			Symbols:    p.Symbols,
			Moves:      p.Moves,
			Promotable: p.Promotable,
			PromotesTo: p.PromotesTo,
		})
	}

	catalog, catalogErr := pieces.NewCatalog(decls)
	errs := []error{catalogErr}

	rs := &Ruleset{
		ID:         guuid.New(),
		Name:       name,
		Catalog:    catalog,
		Placements: make(board.Placements, len(cfg.Positions)),
	}

	seen := make(map[string]bool, len(cfg.Positions))
	for _, pos := range cfg.Positions {
		if seen[pos.Name] {
			errs = append(errs, fmt.Errorf("position %q: %w", pos.Name, ErrDuplicatePosition))
			continue
		}
		seen[pos.Name] = true
		if _, err := board.New(catalog, pos.FEN); err != nil {
			errs = append(errs, fmt.Errorf("position %q: %w", pos.Name, err))
			continue
		}
		rs.Placements[pos.Name] = pos.FEN
		rs.positions = append(rs.positions, pos.Name)
	}

	for _, pt := range catalog.Pieces() {
		if pt.Promotable {
			if _, ok := catalog.PromotionTarget(pt); !ok {
				errs = append(errs, fmt.Errorf("piece %q promotes to unknown piece %q", pt.Name, pt.PromotesTo))
			}
		}
	}

	return rs, errors.Join(errs...)
}

// Load reads the ruleset files at paths and assembles them under name.
func Load(name string, paths ...string) (*Ruleset, error) {
	ctx := log.WithFields(log.Fields{
		"ruleset": name,
		"paths":   paths,
	})

	cfg, err := config.Load(paths...)
	if err != nil {
		ctx.WithError(err).Error("failed to read ruleset")
		return nil, err
	}

	rs, err := Assemble(name, cfg)
	if err != nil {
		ctx.WithError(err).Warn("ruleset has problems")
		return rs, err
	}

	ctx.WithFields(log.Fields{
		"id":        rs.ID,
		"pieces":    rs.Catalog.Len(),
		"positions": len(rs.positions),
	}).Info("loaded ruleset")
	return rs, nil
}
