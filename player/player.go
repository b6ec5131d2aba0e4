package player

import (
	"battleship/communication"
	"battleship/game"
)

// Player is one side of a game: its layout, the damage it has taken and which of its cells were shot.
type Player struct {
	Name     string
	Side     communication.Side
	Layout   *game.Layout
	Resolver *game.Resolver
	Shots    *game.ShotGrid // Cells of this player's board already targeted by the opponent
	Afloat   *game.Counter  // Ships still afloat per size, shown to the opponent
	received int
}

// NewPlayer creates a new Player instance.
func NewPlayer(name string, side communication.Side, layout *game.Layout) *Player {
	return &Player{
		Name:     name,
		Side:     side,
		Layout:   layout,
		Resolver: game.NewResolver(layout),
		Shots:    game.NewShotGrid(layout.Board.Size()),
		Afloat:   game.NewCounter(layout.Fleet),
	}
}

func (p *Player) Board() *game.Board {
	return p.Layout.Board
}

// Receive applies the opponent's shot at c. A kill also marks its halo as targeted and returns
// the halo cells that were newly ruled out.
func (p *Player) Receive(c game.Coordinate) (result game.ShotResult, ruledOut []game.Coordinate) {
	p.Shots.Mark(c)
	p.received++
	result = p.Resolver.Resolve(c)
	if result.Status != game.Destroyed {
		return result, nil
	}

	p.Afloat.Take(result.Ship.Size)
	for _, n := range result.Halo(p.Board().Size()) {
		if p.Shots.CanShoot(n) {
			p.Shots.Mark(n)
			ruledOut = append(ruledOut, n)
		}
	}
	return result, ruledOut
}

// ShotsReceived counts the opponent's shots, not the halo cells marked for free.
func (p *Player) ShotsReceived() int {
	return p.received
}

func (p *Player) Defeated() bool {
	return p.Resolver.AllDestroyed()
}
