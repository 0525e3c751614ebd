package main

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/aether-engine/aether"
	"github.com/aether-engine/aether/filter"
	"github.com/aether-engine/aether/types"
)

// gateSystem halts the rest of its runlevel while the game is paused.
type gateSystem struct {
	aether.BaseSystem
	paused *bool
}

var GateSystemType = aether.NewSystemType("gate", nil,
	func(*aether.Registry) aether.System { return &gateSystem{} })

func (s *gateSystem) Setup(args ...any) {
	s.paused = args[0].(*bool)
}

func (s *gateSystem) Execute(...any) (types.Result, error) {
	if *s.paused {
		return types.Halt, nil
	}
	return types.Continue, nil
}

// moveSystem integrates velocity into position.
type moveSystem struct {
	aether.BaseSystem
}

var MoveSystemType = aether.NewSystemType("move",
	map[string]filter.Spec{
		"movers": filter.Match(PositionType, VelocityType),
	},
	func(*aether.Registry) aether.System { return &moveSystem{} })

func (s *moveSystem) Execute(args ...any) (types.Result, error) {
	dt := args[0].(time.Duration).Seconds()
	s.Query("movers").Each(func(e *aether.Entity) bool {
		pc, _ := e.GetComponent(PositionType)
		vc, _ := e.GetComponent(VelocityType)
		pos, vel := pc.(*Position), vc.(*Velocity)
		pos.X += vel.DX * dt
		pos.Y += vel.DY * dt
		return true
	})
	return types.Continue, nil
}

// bounceSystem reflects movers off the playfield edges. It declares the same
// specification as moveSystem, so both share one cached query.
type bounceSystem struct {
	aether.BaseSystem
	width, height float64
}

var BounceSystemType = aether.NewSystemType("bounce",
	map[string]filter.Spec{
		"movers": filter.Match(PositionType, VelocityType),
	},
	func(*aether.Registry) aether.System { return &bounceSystem{} })

func (s *bounceSystem) Setup(args ...any) {
	s.width = float64(args[0].(int))
	s.height = float64(args[1].(int))
}

func (s *bounceSystem) Execute(...any) (types.Result, error) {
	s.Query("movers").Each(func(e *aether.Entity) bool {
		pc, _ := e.GetComponent(PositionType)
		vc, _ := e.GetComponent(VelocityType)
		pos, vel := pc.(*Position), vc.(*Velocity)
		if pos.X < 0 {
			pos.X, vel.DX = -pos.X, -vel.DX
		}
		if pos.X > s.width-1 {
			pos.X, vel.DX = 2*(s.width-1)-pos.X, -vel.DX
		}
		if pos.Y < 0 {
			pos.Y, vel.DY = -pos.Y, -vel.DY
		}
		if pos.Y > s.height-1 {
			pos.Y, vel.DY = 2*(s.height-1)-pos.Y, -vel.DY
		}
		return true
	})
	return types.Continue, nil
}

// renderSystem draws every positioned sprite to the terminal.
type renderSystem struct {
	aether.BaseSystem
	screen tcell.Screen
}

var RenderSystemType = aether.NewSystemType("render",
	map[string]filter.Spec{
		"drawable": filter.Match(PositionType, SpriteType),
	},
	func(*aether.Registry) aether.System { return &renderSystem{} })

func (s *renderSystem) Setup(args ...any) {
	s.screen = args[0].(tcell.Screen)
}

func (s *renderSystem) Execute(...any) (types.Result, error) {
	s.screen.Clear()
	s.Query("drawable").Each(func(e *aether.Entity) bool {
		pc, _ := e.GetComponent(PositionType)
		sc, _ := e.GetComponent(SpriteType)
		pos, sprite := pc.(*Position), sc.(*Sprite)
		s.screen.SetContent(int(pos.X), int(pos.Y), sprite.Char, nil, sprite.Style)
		return true
	})
	s.screen.Show()
	return types.Continue, nil
}
