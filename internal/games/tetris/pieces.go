// Package tetris implements the falling-block puzzle engine: the settled
// grid, the falling-piece overlay, movement and rotation rules, line clears,
// scoring and the menu/play/results phase flow.
package tetris

import "github.com/vovakirdan/touchtris/internal/core"

// BlockSize is the edge length of a piece's bounding window.
const BlockSize = 4

// PieceID identifies a catalog entry. The zero value asks for a random piece.
type PieceID uint8

const (
	PieceRandom PieceID = iota
	PieceI
	PieceO
	PieceT
	PieceS
	PieceZ
	PieceJ
	PieceL
)

// PieceCount is the number of templates in the catalog.
const PieceCount = 7

// Piece colors (RGB565).
const (
	ColorI core.Color = 0x90E2
	ColorO core.Color = 0x0014
	ColorT core.Color = 0x9AA3
	ColorS core.Color = 0x4D05
	ColorZ core.Color = 0x4D1F
	ColorJ core.Color = 0xA514
	ColorL core.Color = 0x90F3
)

// Shape is a 4x4 occupancy pattern indexed [row][col].
type Shape [BlockSize][BlockSize]bool

// Template is an immutable piece definition.
type Template struct {
	ID    PieceID
	Name  string
	Shape Shape
	Color core.Color
}

// catalog is indexed by PieceID-1.
var catalog = [PieceCount]Template{
	{
		ID: PieceI, Name: "I", Color: ColorI,
		Shape: Shape{
			{false, false, false, false},
			{true, true, true, true},
			{false, false, false, false},
			{false, false, false, false},
		},
	},
	{
		ID: PieceO, Name: "O", Color: ColorO,
		Shape: Shape{
			{false, false, false, false},
			{false, true, true, false},
			{false, true, true, false},
			{false, false, false, false},
		},
	},
	{
		ID: PieceT, Name: "T", Color: ColorT,
		Shape: Shape{
			{false, false, true, false},
			{false, false, true, true},
			{false, false, true, false},
			{false, false, false, false},
		},
	},
	{
		ID: PieceS, Name: "S", Color: ColorS,
		Shape: Shape{
			{false, false, true, true},
			{false, true, true, false},
			{false, false, false, false},
			{false, false, false, false},
		},
	},
	{
		ID: PieceZ, Name: "Z", Color: ColorZ,
		Shape: Shape{
			{false, true, true, false},
			{false, false, true, true},
			{false, false, false, false},
			{false, false, false, false},
		},
	},
	{
		ID: PieceJ, Name: "J", Color: ColorJ,
		Shape: Shape{
			{false, false, false, false},
			{false, true, true, true},
			{false, false, false, true},
			{false, false, false, false},
		},
	},
	{
		ID: PieceL, Name: "L", Color: ColorL,
		Shape: Shape{
			{false, false, false, true},
			{false, true, true, true},
			{false, false, false, false},
			{false, false, false, false},
		},
	},
}

// Lookup returns the template for id. ok is false for PieceRandom and
// unknown ids.
func Lookup(id PieceID) (Template, bool) {
	if id < PieceI || id > PieceL {
		return Template{}, false
	}
	return catalog[id-1], true
}

// Catalog returns a copy of all templates in id order.
func Catalog() []Template {
	out := make([]Template, PieceCount)
	copy(out, catalog[:])
	return out
}

// RandomPiece reduces a raw random value to a piece id.
func RandomPiece(rng RandomSource) PieceID {
	return PieceID(rng.Uint32()%PieceCount) + PieceI
}

// String returns the piece letter.
func (id PieceID) String() string {
	if t, ok := Lookup(id); ok {
		return t.Name
	}
	if id == PieceRandom {
		return "Random"
	}
	return "Unknown"
}

// Cells returns the number of occupied cells in the shape.
func (s Shape) Cells() int {
	n := 0
	for y := range BlockSize {
		for x := range BlockSize {
			if s[y][x] {
				n++
			}
		}
	}
	return n
}
