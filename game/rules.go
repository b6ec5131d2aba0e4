package game

// Rules describes the static shape of a game: board dimensions and fleet composition.
type Rules interface {
	BoardSize() int
	ShipCount(size int) int
	MaxShipSize() int
}
