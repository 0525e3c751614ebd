package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/aether-engine/aether/types"
)

// Position is a location on the playfield, in cell coordinates.
type Position struct {
	types.BaseComponent
	X, Y float64
}

var PositionType = types.NewComponentType("position", func() types.Component {
	return &Position{}
})

func (p *Position) Setup(args ...any) {
	if len(args) == 2 {
		p.X = args[0].(float64)
		p.Y = args[1].(float64)
	}
}

// Velocity is a displacement per second.
type Velocity struct {
	types.BaseComponent
	DX, DY float64
}

var VelocityType = types.NewComponentType("velocity", func() types.Component {
	return &Velocity{}
})

func (v *Velocity) Setup(args ...any) {
	if len(args) == 2 {
		v.DX = args[0].(float64)
		v.DY = args[1].(float64)
	}
}

// Sprite is a single drawable cell.
type Sprite struct {
	types.BaseComponent
	Char  rune
	Style tcell.Style
}

var SpriteType = types.NewComponentType("sprite", func() types.Component {
	return &Sprite{Style: tcell.StyleDefault}
})

func (s *Sprite) Setup(args ...any) {
	if len(args) >= 1 {
		s.Char = args[0].(rune)
	}
	if len(args) >= 2 {
		s.Style = args[1].(tcell.Style)
	}
}
