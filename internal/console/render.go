package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/pterm/pterm"

	"github.com/rocketscienceinc/tictactoe-ledger/internal/address"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/usecase"
)

const emptyCellMark = "·"

// Notifier prints notifications with pterm's prefix printers.
type Notifier struct {
	out io.Writer
}

func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{out: out}
}

func (that *Notifier) Notify(notification usecase.Notification) {
	printer := pterm.Info
	switch notification.Level {
	case usecase.LevelSuccess:
		printer = pterm.Success
	case usecase.LevelError:
		printer = pterm.Error
	case usecase.LevelInfo:
	}

	printer.WithWriter(that.out).Println(notification.Message)
}

// Presenter draws the game screen on a terminal.
type Presenter struct {
	out       io.Writer
	navigated atomic.Bool
}

func NewPresenter(out io.Writer) *Presenter {
	return &Presenter{out: out}
}

func (that *Presenter) Render(view *tictactoe.View) {
	fmt.Fprintln(that.out, renderView(view))
}

func (that *Presenter) SetInputEnabled(enabled bool) {
	if !enabled {
		pterm.Info.WithWriter(that.out).Println("Waiting for the transaction to settle...")
	}
}

func (that *Presenter) NavigateAway() {
	that.navigated.Store(true)
}

// Navigated reports whether the screen asked to be left.
func (that *Presenter) Navigated() bool {
	return that.navigated.Load()
}

func renderView(view *tictactoe.View) string {
	var info strings.Builder

	info.WriteString(pterm.Sprintfln("Game:    %s", address.GameLabel(view.Key.Host, view.Key.Opponent)))
	info.WriteString(pterm.Sprintfln("Status:  %s", view.Game.Status))
	info.WriteString(pterm.Sprintfln("Pool:    %s %s", view.Pool.Display(), view.Currency.Name))

	if view.Role != tictactoe.RoleSpectator {
		info.WriteString(pterm.Sprintfln("You:     %s (%s)", view.ViewerSymbol, view.Role))
	}

	if !view.Game.IsFinished() {
		info.WriteString(pterm.Sprintfln("Round:   %s, %s", view.Game.PlayerRound, view.TurnLabel))
	}

	title := pterm.LightCyan(view.Header)
	if view.Game.IsFinished() {
		title = pterm.LightGreen(view.Header)
	}

	return pterm.DefaultBox.
		WithHorizontalPadding(4).
		WithTitle(title).
		WithTitleTopCenter().
		Sprint(info.String() + "\n" + renderBoard(&view.Game.Board))
}

// renderBoard draws rows by x and columns by y, matching the "x,y" input.
func renderBoard(board *entity.Board) string {
	data := pterm.TableData{{"x\\y", "0", "1", "2"}}

	for x := range entity.BoardSize {
		row := []string{strconv.Itoa(x)}
		for y := range entity.BoardSize {
			mark := string(board.At(entity.Coord{X: uint8(x), Y: uint8(y)}))
			if mark == "" {
				mark = emptyCellMark
			}
			row = append(row, mark)
		}
		data = append(data, row)
	}

	rendered, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return err.Error()
	}

	return rendered
}

func renderGames(rows []usecase.GameRow) (string, error) {
	data := pterm.TableData{{"#", "Game", "Status", "Pool", "Board"}}

	for i, row := range rows {
		data = append(data, []string{strconv.Itoa(i + 1), row.Label, string(row.Status), row.Pool, compactBoard(&row.Board)})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

// compactBoard renders a board on one line, "X·O/·X·/··O".
func compactBoard(board *entity.Board) string {
	lines := make([]string, 0, entity.BoardSize)

	for x := range entity.BoardSize {
		var line strings.Builder
		for y := range entity.BoardSize {
			mark := string(board.At(entity.Coord{X: uint8(x), Y: uint8(y)}))
			if mark == "" {
				mark = emptyCellMark
			}
			line.WriteString(mark)
		}
		lines = append(lines, line.String())
	}

	return strings.Join(lines, "/")
}

// parseCoord reads "x,y" or "(x,y)".
func parseCoord(input string) (entity.Coord, error) {
	xs, ys, ok := strings.Cut(strings.Trim(strings.TrimSpace(input), "()"), ",")
	if !ok {
		return entity.Coord{}, fmt.Errorf("%w: expected x,y", apperror.ErrInvalidCoord)
	}

	x, errX := strconv.ParseUint(strings.TrimSpace(xs), 10, 8)
	y, errY := strconv.ParseUint(strings.TrimSpace(ys), 10, 8)
	if errX != nil || errY != nil {
		return entity.Coord{}, fmt.Errorf("%w: %q", apperror.ErrInvalidCoord, input)
	}

	coord := entity.Coord{X: uint8(x), Y: uint8(y)}
	if !coord.IsValid() {
		return entity.Coord{}, fmt.Errorf("%w: %s", apperror.ErrInvalidCoord, coord)
	}

	return coord, nil
}
