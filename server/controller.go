package server

import (
	"errors"
	"net/url"
	"sync"
	"unicode/utf8"

	"github.com/garlicgarrison/chess-variant-rules/board"
	"github.com/garlicgarrison/chess-variant-rules/moveid"
	"github.com/garlicgarrison/chess-variant-rules/ruleset"
	"github.com/gofiber/fiber/v2"
	guuid "github.com/google/uuid"
)

var ErrGameNotFound = errors.New("game not found")

// GameStore keeps the games created through the API.
type GameStore struct {
	mu    sync.RWMutex
	games map[guuid.UUID]*ruleset.Game
}

func NewGameStore() *GameStore {
	return &GameStore{games: make(map[guuid.UUID]*ruleset.Game)}
}

func (s *GameStore) Put(g *ruleset.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[g.ID] = g
}

func (s *GameStore) Get(id string) (*ruleset.Game, error) {
	gameID, err := guuid.Parse(id)
	if err != nil {
		return nil, ErrGameNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[gameID]
	if !ok {
		return nil, ErrGameNotFound
	}
	return g, nil
}

type RulesetController struct {
	registry *ruleset.Registry
	games    *GameStore
}

func NewRulesetController(registry *ruleset.Registry, games *GameStore) *RulesetController {
	return &RulesetController{registry: registry, games: games}
}

func fail(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (rc *RulesetController) ruleset(c *fiber.Ctx) (*ruleset.Ruleset, error) {
	return rc.registry.Find(c.Params("id"))
}

func (rc *RulesetController) ListRulesets(c *fiber.Ctx) error {
	summaries := []*ruleset.Summary{}
	for _, rs := range rc.registry.List() {
		summaries = append(summaries, rs.Summary())
	}
	return c.JSON(summaries)
}

func (rc *RulesetController) GetRuleset(c *fiber.Ctx) error {
	rs, err := rc.ruleset(c)
	if err != nil {
		return fail(c, fiber.StatusNotFound, err)
	}
	return c.JSON(rs.Summary())
}

func (rc *RulesetController) ListPieces(c *fiber.Ctx) error {
	rs, err := rc.ruleset(c)
	if err != nil {
		return fail(c, fiber.StatusNotFound, err)
	}

	out := []pieceView{}
	for _, pt := range rs.Catalog.Pieces() {
		out = append(out, newPieceView(pt))
	}
	return c.JSON(out)
}

func (rc *RulesetController) GetPiece(c *fiber.Ctx) error {
	rs, err := rc.ruleset(c)
	if err != nil {
		return fail(c, fiber.StatusNotFound, err)
	}

	symbol, err := url.PathUnescape(c.Params("symbol"))
	if err != nil || utf8.RuneCountInString(symbol) != 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "symbol must be a single character",
		})
	}

	r, _ := utf8.DecodeRuneInString(symbol)
	pt, ok := rs.Catalog.Lookup(r)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unknown symbol " + symbol,
		})
	}
	return c.JSON(newPieceView(pt))
}

type createGameRequest struct {
	Position string `json:"position"`
}

func (rc *RulesetController) CreateGame(c *fiber.Ctx) error {
	rs, err := rc.ruleset(c)
	if err != nil {
		return fail(c, fiber.StatusNotFound, err)
	}

	req := createGameRequest{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, err)
		}
	}
	if req.Position == "" {
		req.Position = "standard"
	}

	g, err := ruleset.NewGame(rs, req.Position)
	if err != nil {
		if errors.Is(err, board.ErrMissingStartingPosition) {
			return fail(c, fiber.StatusNotFound, err)
		}
		return fail(c, fiber.StatusUnprocessableEntity, err)
	}
	rc.games.Put(g)

	return c.Status(fiber.StatusCreated).JSON(newGameView(g))
}

func (rc *RulesetController) GetGame(c *fiber.Ctx) error {
	g, err := rc.games.Get(c.Params("gameId"))
	if err != nil {
		return fail(c, fiber.StatusNotFound, err)
	}
	return c.JSON(newGameView(g))
}

type decodeRequest struct {
	ID string `json:"id"`
}

func (rc *RulesetController) DecodeMoveID(c *fiber.Ctx) error {
	req := decodeRequest{}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}

	m, err := moveid.Decode(req.ID)
	if err != nil {
		body := fiber.Map{"error": err.Error(), "kind": decodeKind(err)}
		var de *moveid.DecodeError
		if errors.As(err, &de) && de.Slot != "" {
			body["slot"] = de.Slot
			body["offset"] = de.Offset
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(body)
	}

	return c.JSON(fiber.Map{
		"move":       m,
		"directions": m.Directions(),
		"canonical":  moveid.Encode(m),
	})
}

func decodeKind(err error) string {
	switch {
	case errors.Is(err, moveid.ErrInvalidFlagCharacter):
		return "invalid_flag_character"
	case errors.Is(err, moveid.ErrAmbiguousShape):
		return "ambiguous_shape"
	case errors.Is(err, moveid.ErrMalformedLength):
		return "malformed_length"
	}
	return "unknown"
}
