package server

import (
	"github.com/garlicgarrison/chess-variant-rules/moveid"
	"github.com/garlicgarrison/chess-variant-rules/pieces"
	"github.com/garlicgarrison/chess-variant-rules/ruleset"
	guuid "github.com/google/uuid"
)

type pieceView struct {
	Name       string         `json:"name"`
	White      string         `json:"white"`
	Black      string         `json:"black"`
	Promotable bool           `json:"promotable"`
	PromotesTo string         `json:"promotes_to,omitempty"`
	Moves      []*moveid.Move `json:"moves"`
}

func newPieceView(pt *pieces.PieceType) pieceView {
	return pieceView{
		Name:       pt.Name,
		White:      string(pt.White),
		Black:      string(pt.Black),
		Promotable: pt.Promotable,
		PromotesTo: pt.PromotesTo,
		Moves:      pt.Moves,
	}
}

type boardPieceView struct {
	ID     uint16 `json:"id"`
	Color  string `json:"color"`
	Symbol string `json:"symbol"`
	Type   string `json:"type"`
}

type gameView struct {
	ID        guuid.UUID       `json:"id"`
	Ruleset   guuid.UUID       `json:"ruleset"`
	Position  string           `json:"position"`
	Turn      string           `json:"turn"`
	Files     int              `json:"files"`
	Ranks     int              `json:"ranks"`
	Placement string           `json:"placement"`
	Diagram   string           `json:"diagram"`
	Squares   []uint16         `json:"squares"`
	Pieces    []boardPieceView `json:"pieces"`
}

func newGameView(g *ruleset.Game) gameView {
	v := gameView{
		ID:        g.ID,
		Ruleset:   g.Ruleset.ID,
		Position:  g.Position,
		Turn:      g.Turn.String(),
		Files:     g.Board.Files,
		Ranks:     g.Board.Ranks,
		Placement: g.Board.Placement(),
		Diagram:   g.Board.String(),
		Squares:   g.Board.Squares,
		Pieces:    make([]boardPieceView, 0, len(g.Board.Pieces)),
	}
	for _, p := range g.Board.Pieces {
		v.Pieces = append(v.Pieces, boardPieceView{
			ID:     p.ID,
			Color:  p.Color.String(),
			Symbol: string(p.Symbol),
			Type:   p.Type.Name,
		})
	}
	return v
}
