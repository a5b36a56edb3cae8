package console

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/gookit/color"
	"golang.org/x/term"

	"sockchat/internal/chat"
)

// Console renders chat notifications as operator-facing lines.  Regular
// output goes to out; server errors and disconnect notices go to errOut.
type Console struct {
	out    io.Writer
	errOut io.Writer
	color  bool

	mu sync.Mutex
}

var _ chat.Notifier = (*Console)(nil)

// NewConsole returns a renderer writing to out and errOut.  Styling is
// applied only when colored is true.
func NewConsole(out, errOut io.Writer, colored bool) *Console {
	return &Console{out: out, errOut: errOut, color: colored}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w interface{}) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (c *Console) style(s color.Style, text string) string {
	if !c.color {
		return text
	}
	return s.Render(text)
}

func (c *Console) println(w io.Writer, line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(w, line)
}

var (
	styleOK     = color.New(color.FgGreen, color.OpBold)
	styleInfo   = color.New(color.FgCyan)
	styleMuted  = color.New(color.FgGray)
	styleUser   = color.New(color.FgYellow, color.OpBold)
	styleWarn   = color.New(color.FgRed)
	styleNotice = color.New(color.FgMagenta)
)

// ── Session lifecycle ────────────────────────────────────────────────

// Banner prints the program title.
func (c *Console) Banner() {
	c.println(c.out, c.style(styleOK, "=== sockchat: Socket.IO chat client ==="))
}

// Connecting announces the dial target.
func (c *Console) Connecting(serverURL string) {
	c.println(c.out, fmt.Sprintf("Connecting to %s …", serverURL))
}

// Instructions prints the command help shown once the loop starts.
func (c *Console) Instructions() {
	c.println(c.out, c.style(styleMuted, "———\nType a message and press Enter to send.\nCommands: /list (show users) | /quit (leave)\n———"))
}

// Goodbye prints the farewell line.
func (c *Console) Goodbye() {
	c.println(c.out, "Goodbye.")
}

// ── chat.Notifier ────────────────────────────────────────────────────

// Handshaking reports that the transport is up and hello is on its way.
func (c *Console) Handshaking() {
	c.println(c.out, c.style(styleMuted, "→ Connection established. Sending handshake…"))
}

// Welcome confirms the session with the initial roster.
func (c *Console) Welcome(username string, roster []string) {
	c.println(c.out, c.style(styleOK, fmt.Sprintf("✅ Connected as %q. Users online: %s", username, chat.FormatRoster(roster))))
}

// Chat prints one public message.
func (c *Console) Chat(clock, username, text string) {
	c.println(c.out, fmt.Sprintf("[%s] %s: %s", clock, c.style(styleUser, username), text))
}

// Roster prints a refreshed user list.
func (c *Console) Roster(users []string) {
	c.println(c.out, c.style(styleInfo, "👥 Online: "+chat.FormatRoster(users)))
}

// Joined announces a new user.
func (c *Console) Joined(username string) {
	c.println(c.out, c.style(styleInfo, "➕ "+username+" joined"))
}

// Left announces a departed user.
func (c *Console) Left(username string) {
	c.println(c.out, c.style(styleInfo, "➖ "+username+" left"))
}

// ServerError reports an application error sent by the server.
func (c *Console) ServerError(code, message string) {
	c.println(c.errOut, c.style(styleWarn, fmt.Sprintf("⚠️  server:error [%s] %s", code, message)))
}

// Disconnected reports the end of the transport session.
func (c *Console) Disconnected(reason string) {
	c.println(c.errOut, c.style(styleNotice, "🔌 Disconnected: "+reason))
}

// Unexpected notes an event whose payload could not be decoded.
func (c *Console) Unexpected(event string, err error) {
	c.println(c.out, c.style(styleMuted, fmt.Sprintf("(%s) unexpected payload", event)))
}
