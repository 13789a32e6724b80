package engine

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/minaorangina/kabo/protocol"
)

// CLIPlayer prints every message it is sent to a terminal
type CLIPlayer struct {
	id   string
	name string
	mu   sync.Mutex
	out  io.Writer
}

func NewCLIPlayer(id, name string, out io.Writer) *CLIPlayer {
	return &CLIPlayer{id: id, name: name, out: out}
}

func (p *CLIPlayer) ID() string {
	return p.id
}

func (p *CLIPlayer) Name() string {
	return p.name
}

func (p *CLIPlayer) Send(msg protocol.OutboundMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	SendText(p.out, "[%s]\n%s\n", p.name, buildDisplayText(msg))
	return nil
}

var lowerNameToCmd = func() map[string]protocol.Cmd {
	m := map[string]protocol.Cmd{}
	for name, cmd := range protocol.NameToCmd {
		m[strings.ToLower(name)] = cmd
	}
	return m
}()

// ParseCommand reads a command such as "spy 2 0" for the given player
func ParseCommand(playerID, line string) (protocol.InboundMessage, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return protocol.InboundMessage{}, ErrUnknownCommand
	}

	cmd, ok := lowerNameToCmd[strings.ToLower(fields[0])]
	if !ok {
		return protocol.InboundMessage{}, fmt.Errorf("%w: %s", ErrUnknownCommand, fields[0])
	}

	decision := []int{}
	for _, f := range fields[1:] {
		n, err := strconv.Atoi(f)
		if err != nil {
			return protocol.InboundMessage{}, fmt.Errorf("%w: %q is not a number", ErrBadDecision, f)
		}
		decision = append(decision, n)
	}

	return protocol.InboundMessage{PlayerID: playerID, Command: cmd, Decision: decision}, nil
}

// ReadCommands lets several players share one terminal. Each line starts
// with the seat number of the player who is typing. It returns once the
// game is over, ctx is done or r runs out.
func ReadCommands(ctx context.Context, r io.Reader, w io.Writer, ps Players, ge GameEngine) error {
	SendText(w, commandHelpText())

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			case <-ge.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ge.Done():
			SendText(w, "Thanks for playing!\n")
			return nil

		case text, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			handleLine(w, text, ps, ge)
		}
	}
}

func handleLine(w io.Writer, text string, ps Players, ge GameEngine) {
	line := strings.TrimSpace(text)
	if line == "" {
		return
	}
	if line == "help" {
		SendText(w, commandHelpText())
		return
	}

	seatText, rest, _ := strings.Cut(line, " ")
	seat, err := strconv.Atoi(seatText)
	if err != nil || seat < 0 || seat >= len(ps) {
		SendText(w, "Unknown seat %q\n", seatText)
		return
	}

	msg, err := ParseCommand(ps[seat].ID(), rest)
	if err != nil {
		SendText(w, "%v\n", err)
		return
	}

	ge.Receive(msg)
}
