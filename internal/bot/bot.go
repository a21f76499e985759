package bot

import (
	"golang.org/x/exp/rand"

	"airhockey/internal/config"
	"airhockey/internal/hockey"
)

const (
	// largest lateral aim error, reached at skill 0
	maxAimOffset = 14.0
	// chance per frame of leaving the controls alone, reached at skill 0
	maxHesitation = 0.35
	// distance under which the bot considers itself on target
	deadband = 1.5
	// how far behind the puck the bot lines up before striking
	lineUp = hockey.PaddleRadius + hockey.PuckRadius + 2
)

// Bot plays one paddle with the same digital controls a person has. It
// defends on its goal line while the puck is in the other half and lines up
// behind the puck to strike it when it comes over.
type Bot struct {
	skill  float64
	rng    *rand.Rand
	offset float64
	// sign of the puck's z velocity when the aim was last rolled
	approach float64
}

func New(cfg config.Bot) *Bot {
	b := &Bot{
		skill: cfg.Skill,
		rng:   rand.New(rand.NewSource(cfg.Seed)),
	}
	b.roll()
	return b
}

func (b *Bot) Input(side hockey.Side, snap hockey.Snapshot) hockey.Input {
	if b.rng.Float64() < (1-b.skill)*maxHesitation {
		return hockey.Input{}
	}

	// home is the sign of z on this side's half; forward is the other way
	home := 1.0
	if side == hockey.Player2 {
		home = -1.0
	}
	paddle := snap.Paddles[side].Position
	puck := snap.Puck.Position

	if vz := snap.Puck.Velocity[1]; vz != 0 && sgn(vz) != b.approach {
		b.approach = sgn(vz)
		b.roll()
	}

	var target hockey.Vec
	switch {
	case puck[1]*home <= 0:
		// defend: shadow the puck on the start line
		target = hockey.Vec{puck[0]*0.5 + b.offset, snap.Table.StartPosition(side)[1]}
	case paddle[1]*home > puck[1]*home:
		// behind the puck: drive through it
		target = hockey.Vec{puck[0] + b.offset, puck[1]}
	default:
		// in front of the puck: go round it and line up behind
		target = hockey.Vec{puck[0] + b.offset, puck[1] + home*lineUp}
		if abs(paddle[0]-puck[0]) < lineUp {
			target[0] += sidestep(paddle[0] - puck[0])
		}
	}

	var in hockey.Input
	dx := target[0] - paddle[0]
	switch {
	case dx > deadband:
		in.Right = true
	case dx < -deadband:
		in.Left = true
	}
	along := (target[1] - paddle[1]) * -home
	switch {
	case along > deadband:
		in.Forward = true
	case along < -deadband:
		in.Backward = true
	}
	return in
}

func (b *Bot) roll() {
	b.offset = (b.rng.Float64()*2 - 1) * maxAimOffset * (1 - b.skill)
}

func sidestep(dx float64) float64 {
	if dx < 0 {
		return -lineUp
	}
	return lineUp
}

func sgn(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
