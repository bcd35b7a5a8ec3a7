package ruleset

import (
	guuid "github.com/google/uuid"
	"github.com/montanaflynn/stats"
)

type Summary struct {
	ID          guuid.UUID     `json:"id"`
	Name        string         `json:"name"`
	Pieces      int            `json:"pieces"`
	Symbols     string         `json:"symbols"`
	MoveIDs     int            `json:"move_ids"`
	Shapes      map[string]int `json:"shapes"`
	Positions   []string       `json:"positions"`
	MeanMoves   float64        `json:"mean_moves"`
	MedianMoves float64        `json:"median_moves"`
	MaxMoves    float64        `json:"max_moves"`
}

func (rs *Ruleset) Summary() *Summary {
	s := &Summary{
		ID:        rs.ID,
		Name:      rs.Name,
		Pieces:    rs.Catalog.Len(),
		Symbols:   rs.Catalog.Symbols(),
		Shapes:    make(map[string]int),
		Positions: rs.Positions(),
	}

	counts := make([]int, 0, rs.Catalog.Len())
	for _, pt := range rs.Catalog.Pieces() {
		counts = append(counts, len(pt.Moves))
		s.MoveIDs += len(pt.Moves)
		for _, m := range pt.Moves {
			s.Shapes[m.Shape.String()]++
		}
	}

	if len(counts) == 0 {
		return s
	}
	data := stats.LoadRawData(counts)
	s.MeanMoves, _ = stats.Mean(data)
	s.MedianMoves, _ = stats.Median(data)
	s.MaxMoves, _ = stats.Max(data)
	return s
}
