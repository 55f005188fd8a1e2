// Package demo is a small arena game that exercises every framekit package:
// keyboard movement, mouse clicks, sprite animation, collision and audio.
package demo

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"chosenoffset.com/framekit/internal/anim"
	"chosenoffset.com/framekit/internal/app"
	"chosenoffset.com/framekit/internal/audio"
	"chosenoffset.com/framekit/internal/collision"
	"chosenoffset.com/framekit/internal/input"
	"chosenoffset.com/framekit/internal/logger"
	"chosenoffset.com/framekit/internal/render"
	"chosenoffset.com/framekit/internal/sprite"
)

const (
	tile         = 16
	scale        = 2
	cell         = tile * scale
	messageTicks = 120
)

var background = color.RGBA{40, 40, 45, 255}

// Game holds all game state. Everything except the click queue is touched
// only by the loop worker.
type Game struct {
	width, height int
	atlas         *sprite.Atlas
	pickup        *audio.Clip
	log           *slog.Logger

	player   Player
	playerLF anim.Frames[*sprite.Sprite]
	walls    []*collision.Bound
	coins    []*Coin
	score    int
	messages []Message

	clicks chan image.Point
	cancel func()
}

var _ app.Game = (*Game)(nil)

// New builds the arena for a width x height frame. A nil atlas falls back to
// the generated placeholder sheet; a nil clip plays nothing.
func New(atlas *sprite.Atlas, pickup *audio.Clip, width, height int, log *slog.Logger) (*Game, error) {
	if log == nil {
		log = logger.L()
	}
	if atlas == nil {
		cfg, img := sprite.DemoAtlas("demo", "")
		a, err := sprite.NewAtlas(cfg, img)
		if err != nil {
			return nil, err
		}
		atlas = a
	}

	walk, err := atlas.Animation("walk")
	if err != nil {
		return nil, err
	}
	frames, _ := atlas.Frames("walk")
	flipped := make(anim.Frames[*sprite.Sprite], len(frames))
	for i, f := range frames {
		flipped[i] = f.FlipHorizontal()
	}

	g := &Game{
		width:    width,
		height:   height,
		atlas:    atlas,
		pickup:   pickup,
		log:      log,
		playerLF: flipped,
		clicks:   make(chan image.Point, 16),
	}
	g.player = Player{
		Bound: collision.NewBound(width/2-cell/2, height/2-cell/2, cell-4, cell-4),
		Walk:  walk,
		Speed: 2,
	}
	g.buildWalls()
	if err := g.placeCoins(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) buildWalls() {
	cols, rows := g.width/cell, g.height/cell
	for c := 0; c < cols; c++ {
		g.walls = append(g.walls,
			collision.NewBound(c*cell, 0, cell, cell),
			collision.NewBound(c*cell, (rows-1)*cell, cell, cell))
	}
	for r := 1; r < rows-1; r++ {
		g.walls = append(g.walls,
			collision.NewBound(0, r*cell, cell, cell),
			collision.NewBound((cols-1)*cell, r*cell, cell, cell))
	}
}

func (g *Game) placeCoins() error {
	spots := []image.Point{
		{2, 2}, {g.width/cell - 3, 2}, {2, g.height/cell - 3}, {g.width/cell - 3, g.height/cell - 3},
	}
	for _, p := range spots {
		spin, err := g.atlas.Animation("coin")
		if err != nil {
			return err
		}
		g.coins = append(g.coins, &Coin{
			Bound: collision.NewBound(p.X*cell, p.Y*cell, cell, cell),
			Spin:  spin,
		})
	}
	return nil
}

// Attach subscribes to mouse clicks. Clicking a coin pauses or resumes its
// spin. The returned function unsubscribes.
func (g *Game) Attach(events input.ButtonEvents) func() {
	g.cancel = events.OnClick(func(ev input.MouseEvent) {
		if ev.Button != input.ButtonLeft {
			return
		}
		// runs on the host goroutine; hand over without blocking
		select {
		case g.clicks <- image.Pt(ev.X, ev.Y):
		default:
		}
	})
	return g.cancel
}

// Score returns the number of coins collected.
func (g *Game) Score() int { return g.score }

// Update implements app.Game.
func (g *Game) Update(a *app.App) error {
	if err := a.QuitOnKey(input.KeyEscape, 0); err != nil {
		return err
	}

	g.handleClicks()
	g.movePlayer(a.Input())

	for _, c := range g.coins {
		if c.Collected {
			continue
		}
		c.Spin.Update()
		if g.player.Bound.Colliding(c.Bound) {
			c.Collected = true
			g.score++
			g.pickup.Play()
			g.log.Debug("coin collected", "score", g.score)
			g.say(fmt.Sprintf("coin %d/%d", g.score, len(g.coins)))
		}
	}

	g.updateMessages()
	return nil
}

func (g *Game) handleClicks() {
	for {
		select {
		case p := <-g.clicks:
			for _, c := range g.coins {
				if !c.Collected && c.Bound.Rect().Contains(p.X, p.Y) {
					c.Spin.SetPlaying(!c.Spin.Playing())
				}
			}
		default:
			return
		}
	}
}

func (g *Game) movePlayer(in *input.Store) {
	dx, dy := 0, 0
	if in.IsPressed(input.KeyA) || in.IsPressed(input.KeyLeft) {
		dx -= g.player.Speed
	}
	if in.IsPressed(input.KeyD) || in.IsPressed(input.KeyRight) {
		dx += g.player.Speed
	}
	if in.IsPressed(input.KeyW) || in.IsPressed(input.KeyUp) {
		dy -= g.player.Speed
	}
	if in.IsPressed(input.KeyS) || in.IsPressed(input.KeyDown) {
		dy += g.player.Speed
	}

	moving := dx != 0 || dy != 0
	g.player.Walk.SetPlaying(moving)
	g.player.Walk.Update()
	if dx != 0 {
		g.player.FacingLeft = dx < 0
	}

	// axes are resolved separately so the player slides along walls
	b := g.player.Bound
	if dx != 0 {
		b.Translate(dx, 0)
		if g.hitsWall(b) {
			b.Translate(-dx, 0)
		}
	}
	if dy != 0 {
		b.Translate(0, dy)
		if g.hitsWall(b) {
			b.Translate(0, -dy)
		}
	}
}

func (g *Game) hitsWall(b *collision.Bound) bool {
	for _, w := range g.walls {
		if b.Colliding(w) {
			return true
		}
	}
	return false
}

func (g *Game) say(text string) {
	g.messages = append(g.messages, Message{Text: text, TicksLeft: messageTicks, MaxTicks: messageTicks})
}

func (g *Game) updateMessages() {
	kept := g.messages[:0]
	for _, m := range g.messages {
		m.TicksLeft--
		if m.TicksLeft > 0 {
			kept = append(kept, m)
		}
	}
	g.messages = kept
}

// Draw implements app.Game.
func (g *Game) Draw(dst *image.RGBA) {
	render.Clear(dst, background)

	if wall, ok := g.atlas.Sprite("wall"); ok {
		for _, w := range g.walls {
			wall.Draw(dst, w.X(), w.Y(), w.Width(), w.Height())
		}
	}

	for _, c := range g.coins {
		if c.Collected {
			continue
		}
		c.Spin.Current().Draw(dst, c.Bound.X(), c.Bound.Y(), cell, cell)
	}

	p := g.player
	frame := p.Walk.Current()
	if p.FacingLeft {
		frame = g.playerLF.At(p.Walk.Index())
	}
	frame.Draw(dst, p.Bound.X()-2, p.Bound.Y()-2, cell, cell)

	status := fmt.Sprintf("score: %d", g.score)
	w, _ := render.MeasureText(status)
	render.DrawText(dst, status, g.width-w-cell-4, 4, color.White)

	y := g.height - cell - 16
	for i := len(g.messages) - 1; i >= 0; i-- {
		m := g.messages[i]
		alpha := uint8(255 * m.TicksLeft / m.MaxTicks)
		render.DrawText(dst, m.Text, cell+4, y, color.NRGBA{255, 255, 200, alpha})
		y -= 14
	}
}
