package console

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/term"

	"github.com/hollowpine/stride/internal/anim"
	"github.com/hollowpine/stride/internal/character"
	"github.com/hollowpine/stride/internal/locomotion"
)

const (
	tickInterval = time.Second / 60
	movePulse    = 180 * time.Millisecond
	lookStep     = 2.5
)

// Console drives a character controller interactively from a raw-mode
// terminal: WASD pulses the move axes, arrow keys feed look input, ':'
// opens command mode. It synthesizes one InputFrame per tick; look input
// is an impulse consumed by the tick it lands on.
//
// The controller itself is single-threaded and only ever touched from the
// tick goroutine. The key-reader goroutine talks to it through Defer and
// reads display state from the snapshot the tick loop publishes.
type Console struct {
	controller *character.Controller

	mu          sync.Mutex
	move        mgl64.Vec2
	pendingLook mgl64.Vec2
	moveXUntil  time.Time
	moveYUntil  time.Time
	commandMode bool
	commandBuf  []rune
	statusWidth int
	pending     []func()
	snap        snapshot
}

type snapshot struct {
	body   locomotion.Body
	state  locomotion.State
	params anim.Parameters
}

func New(controller *character.Controller) *Console {
	return &Console{controller: controller}
}

// Run puts the terminal in raw mode and blocks until ctx is done or the
// user quits.
func (c *Console) Run(ctx context.Context) error {
	if c.controller == nil {
		return fmt.Errorf("console controller is nil")
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("set terminal raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
		fmt.Print("\r\n")
	}()

	fmt.Print("[stride] console started (W/A/S/D pulse, arrows look, X clear, :, Q quit)\r\n")
	c.renderStatusLine()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go c.tickLoop(ctx)

	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		b, err := reader.ReadByte()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read console input: %w", err)
		}
		if quit := c.handleKey(reader, b); quit {
			return nil
		}
	}
}

// Frame drains the pending look impulse and reports the current move
// axes. Satisfies character.InputSource.
func (c *Console) Frame() locomotion.InputFrame {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expirePulsesLocked(time.Now())
	frame := locomotion.InputFrame{Move: c.move, Look: c.pendingLook}
	c.pendingLook = mgl64.Vec2{}
	return frame
}

func (c *Console) tickLoop(ctx context.Context) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	dt := tickInterval.Seconds()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.runPending()
			in := c.Frame()
			params := c.controller.Update(in, dt)
			c.controller.LateUpdate(in)

			c.mu.Lock()
			c.snap = snapshot{
				body:   c.controller.Body(),
				state:  c.controller.State(),
				params: params,
			}
			c.mu.Unlock()

			c.renderStatusLine()
		}
	}
}

// Defer queues fn to run on the tick goroutine before the next update.
// Anything that needs the controller (config reload, console commands)
// goes through here.
func (c *Console) Defer(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append(c.pending, fn)
}

func (c *Console) runPending() {
	c.mu.Lock()
	fns := c.pending
	c.pending = nil
	c.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (c *Console) handleKey(reader *bufio.Reader, b byte) bool {
	if c.isCommandMode() {
		c.handleCommandByte(b)
		return false
	}

	switch b {
	case ':':
		c.enterCommandMode()
		return false
	case 'w', 'W':
		c.pulseAxisY(1)
	case 's', 'S':
		c.pulseAxisY(-1)
	case 'a', 'A':
		c.pulseAxisX(-1)
	case 'd', 'D':
		c.pulseAxisX(1)
	case 'x', 'X':
		c.clearInput()
	case 'q', 'Q', 3: // Ctrl-C arrives as a raw byte in raw mode
		return true
	case 27: // ESC + arrow sequence
		next, err := reader.ReadByte()
		if err != nil || next != '[' {
			return false
		}
		arrow, err := reader.ReadByte()
		if err != nil {
			return false
		}
		switch arrow {
		case 'D':
			c.addLook(-lookStep, 0)
		case 'C':
			c.addLook(lookStep, 0)
		case 'A':
			c.addLook(0, lookStep)
		case 'B':
			c.addLook(0, -lookStep)
		}
	}
	c.renderStatusLine()
	return false
}

func (c *Console) pulseAxisY(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.move[1] = v
	c.moveYUntil = time.Now().Add(movePulse)
}

func (c *Console) pulseAxisX(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.move[0] = v
	c.moveXUntil = time.Now().Add(movePulse)
}

func (c *Console) addLook(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingLook[0] += x
	c.pendingLook[1] += y
}

func (c *Console) clearInput() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.move = mgl64.Vec2{}
	c.pendingLook = mgl64.Vec2{}
	c.moveXUntil = time.Time{}
	c.moveYUntil = time.Time{}
}

func (c *Console) expirePulsesLocked(now time.Time) {
	if !c.moveXUntil.IsZero() && !now.Before(c.moveXUntil) {
		c.move[0] = 0
		c.moveXUntil = time.Time{}
	}
	if !c.moveYUntil.IsZero() && !now.Before(c.moveYUntil) {
		c.move[1] = 0
		c.moveYUntil = time.Time{}
	}
}

func (c *Console) isCommandMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commandMode
}

func (c *Console) enterCommandMode() {
	c.mu.Lock()
	c.commandMode = true
	c.commandBuf = c.commandBuf[:0]
	c.mu.Unlock()
	fmt.Print("\r\n:")
}

func (c *Console) handleCommandByte(b byte) {
	switch b {
	case 13, 10: // Enter
		c.mu.Lock()
		cmd := strings.TrimSpace(string(c.commandBuf))
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()

		fmt.Print("\r\n")
		if cmd != "" {
			c.executeCommand(cmd)
		}
		c.renderStatusLine()
	case 27: // ESC cancels
		c.mu.Lock()
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()
		fmt.Print("\r\n[stride] command cancelled\r\n")
		c.renderStatusLine()
	case 8, 127: // Backspace
		c.mu.Lock()
		if len(c.commandBuf) > 0 {
			c.commandBuf = c.commandBuf[:len(c.commandBuf)-1]
		}
		buf := string(c.commandBuf)
		c.mu.Unlock()
		fmt.Printf("\r:%s \r:%s", buf, buf)
	default:
		if b < 32 || b > 126 {
			return
		}
		c.mu.Lock()
		c.commandBuf = append(c.commandBuf, rune(b))
		buf := string(c.commandBuf)
		c.mu.Unlock()
		fmt.Printf("\r:%s", buf)
	}
}

func (c *Console) executeCommand(cmd string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "help":
		c.printHelp()
	case "state":
		c.Defer(func() {
			body := c.controller.Body()
			rig := c.controller.Camera()
			fmt.Printf("\r\n[stride] pos=(%.3f,%.3f,%.3f) vel=(%.3f,%.3f,%.3f) vv=%.3f state=%s yaw=%.1f cam=(%.1f,%.1f)\r\n",
				body.Position.X(), body.Position.Y(), body.Position.Z(),
				body.PlanarVelocity.X(), body.PlanarVelocity.Y(), body.PlanarVelocity.Z(),
				body.VerticalVelocity,
				c.controller.State(),
				body.Yaw, rig.Yaw, rig.Pitch,
			)
		})
	case "probe":
		c.Defer(func() {
			p := c.controller.Probe()
			fmt.Printf("\r\n[stride] grounded=%t slope=%.2f on_slope=%t normal=(%.2f,%.2f,%.2f)\r\n",
				p.Grounded, p.SlopeAngleDeg, p.OnSlope,
				p.Normal.X(), p.Normal.Y(), p.Normal.Z(),
			)
		})
	case "anim":
		c.Defer(func() {
			params := c.controller.Params()
			fmt.Printf("\r\n[stride] input_x=%.3f input_y=%.3f input_magnitude=%.3f\r\n",
				params.InputX, params.InputY, params.InputMagnitude)
		})
	case "tp":
		if len(parts) != 4 {
			fmt.Print("[stride] usage: :tp <x> <y> <z>\r\n")
			return
		}
		x, err1 := strconv.ParseFloat(parts[1], 64)
		y, err2 := strconv.ParseFloat(parts[2], 64)
		z, err3 := strconv.ParseFloat(parts[3], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			fmt.Print("[stride] invalid tp args\r\n")
			return
		}
		c.Defer(func() {
			c.controller.SetPosition(mgl64.Vec3{x, y, z})
			fmt.Printf("\r\n[stride] teleported to (%.3f, %.3f, %.3f)\r\n", x, y, z)
		})
	default:
		fmt.Printf("[stride] unknown command: %s\r\n", parts[0])
	}
}

func (c *Console) printHelp() {
	fmt.Print("[stride] keys:\r\n")
	fmt.Print("  W/S/A/D: pulse movement (~180ms)\r\n")
	fmt.Print("  Arrow keys: look impulse\r\n")
	fmt.Print("  X: clear all input\r\n")
	fmt.Print("  Q: quit\r\n")
	fmt.Print("  : enter command mode\r\n")
	fmt.Print("[stride] commands: :state :probe :anim :tp <x> <y> <z> :help\r\n")
}

func (c *Console) renderStatusLine() {
	c.mu.Lock()
	if c.commandMode {
		c.mu.Unlock()
		return
	}
	move := c.move
	width := c.statusWidth
	snap := c.snap
	c.mu.Unlock()

	line := fmt.Sprintf(
		"[move:(%+.0f,%+.0f) %s | X:%.2f Y:%.2f Z:%.2f | speed:%.2f blend:%.2f]",
		move.X(), move.Y(),
		snap.state,
		snap.body.Position.X(), snap.body.Position.Y(), snap.body.Position.Z(),
		snap.body.PlanarSpeed(),
		snap.params.InputMagnitude,
	)

	padding := ""
	if width > len(line) {
		padding = strings.Repeat(" ", width-len(line))
	}
	fmt.Printf("\r%s%s", line, padding)

	c.mu.Lock()
	if len(line) > c.statusWidth {
		c.statusWidth = len(line)
	}
	c.mu.Unlock()
}
