package moveid

// Vector is a signed step in board coordinates.
type Vector struct {
	File int `json:"file"`
	Rank int `json:"rank"`
}

var axes = [4]func(Vector) Vector{
	func(v Vector) Vector { return Vector{-v.File, v.Rank} },
	func(v Vector) Vector { return Vector{v.File, -v.Rank} },
	func(v Vector) Vector { return Vector{v.Rank, v.File} },
	func(v Vector) Vector { return Vector{-v.Rank, -v.File} },
}

// Directions expands the translation under every enabled reflection axis,
// repeatedly, until no new vector appears. The stored translation comes first.
func (m *Move) Directions() []Vector {
	start := Vector{int(m.Translation.File), int(m.Translation.Rank)}
	seen := map[Vector]bool{start: true}
	out := []Vector{start}

	for i := 0; i < len(out); i++ {
		for axis, reflect := range axes {
			if !m.Reflections[axis] {
				continue
			}
			next := reflect(out[i])
			if seen[next] {
				continue
			}
			seen[next] = true
			out = append(out, next)
		}
	}
	return out
}
