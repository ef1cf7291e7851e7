/*
controller.go - Event dispatch

PURPOSE:
  Maps every inbound chat event to a session transition, a menu transition,
  or an engine call, and renders the resulting view through the Transport.

STATE MACHINE (per session):
  Idle -> Selecting -> DateSelecting -> Confirming -> Idle

  Entering either top-level flow resets the session to Selecting with the
  mode set. Add/remove stay within Selecting. The date picker transitions to
  DateSelecting and back on selection or cancel. Confirm attempts the commit:
  success returns to Idle (fresh session), failure leaves the session and the
  current view untouched so the operator can correct and retry.

ERROR HANDLING:
  All user-correctable commit failures surface as non-blocking alerts over
  the current view. A persistence failure shows a generic retry alert.
  Nothing here is fatal.

SEE ALSO:
  - depot/engine.go: The commit protocol
  - keyboards.go: Callback payload scheme
*/
package bot

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/warp/gear-depot/catalog"
	"github.com/warp/gear-depot/depot"
)

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns the event-to-view mapping for every user.
type Controller struct {
	sessions *depot.Sessions
	engine   *depot.Engine
	ledger   depot.LedgerStore
	tr       Transport

	// now is injectable for tests; feeds the date picker.
	now func() time.Time
}

// New creates a controller over the given collaborators.
func New(sessions *depot.Sessions, engine *depot.Engine, ledger depot.LedgerStore, tr Transport) *Controller {
	return &Controller{
		sessions: sessions,
		engine:   engine,
		ledger:   ledger,
		tr:       tr,
		now:      time.Now,
	}
}

// WithClock overrides the controller's time source. Returns the controller
// for chaining at construction time.
func (c *Controller) WithClock(now func() time.Time) *Controller {
	c.now = now
	return c
}

// HandleEvent dispatches one inbound event. Unknown events are ignored;
// returned errors are transport failures, suitable for logging only.
func (c *Controller) HandleEvent(ctx context.Context, ev Event) error {
	switch ev.Type {
	case EventText:
		return c.handleText(ctx, ev)
	case EventTap:
		return c.handleTap(ctx, ev)
	}
	return nil
}

// =============================================================================
// TEXT MESSAGES - Commands and reply-keyboard taps
// =============================================================================

func (c *Controller) handleText(ctx context.Context, ev Event) error {
	switch ev.Text {
	case "/start":
		return c.tr.SendMenu(ctx, ev.ChatID, textGreeting, mainMenuRows())

	case MenuOrder:
		c.sessions.Ensure(ev.UserID).Reset(depot.ModeOrder)
		kb := orderMenu()
		return c.tr.Send(ctx, ev.ChatID, textOrderMenu, &kb)

	case MenuReturn:
		c.sessions.Ensure(ev.UserID).Reset(depot.ModeReturn)
		kb := returnMenu()
		return c.tr.Send(ctx, ev.ChatID, textReturnMenu, &kb)

	case MenuStock:
		ledger, err := c.ledger.Load(ctx)
		if err != nil {
			return err
		}
		text, pages := renderStockPage(ledger, 0)
		return c.tr.Send(ctx, ev.ChatID, text, stockNav(0, pages))
	}
	// Unrecognized text is ignored.
	return nil
}

// =============================================================================
// BUTTON TAPS
// =============================================================================

func (c *Controller) handleTap(ctx context.Context, ev Event) error {
	data := ev.Data

	switch {
	case data == "back_main":
		if err := c.tr.SendMenu(ctx, ev.ChatID, textMainMenu, mainMenuRows()); err != nil {
			return err
		}
		return c.tr.Ack(ctx, ev.TapID)

	case strings.HasPrefix(data, "stock_page_"):
		return c.stockPage(ctx, ev, parsePage(strings.TrimPrefix(data, "stock_page_")))
	}

	var flow string
	var mode depot.Mode
	switch {
	case strings.HasPrefix(data, "order_"):
		flow, mode = "order", depot.ModeOrder
	case strings.HasPrefix(data, "return_"):
		flow, mode = "return", depot.ModeReturn
	default:
		// Stale or foreign payload; complete the tap and move on.
		return c.tr.Ack(ctx, ev.TapID)
	}

	rest := strings.TrimPrefix(data, flow+"_")
	switch {
	case rest == "confirm":
		return c.confirm(ctx, ev, flow, mode)

	case rest == "items_back" || rest == "date_back":
		text, kb := flowMenu(flow)
		if err := c.tr.Edit(ctx, ev.ChatID, ev.MessageID, text, &kb); err != nil {
			return err
		}
		return c.tr.Ack(ctx, ev.TapID)

	case rest == "date_open":
		kb := dateKeyboard(flow, c.now())
		if err := c.tr.Edit(ctx, ev.ChatID, ev.MessageID, textPickDate, &kb); err != nil {
			return err
		}
		return c.tr.Ack(ctx, ev.TapID)

	case strings.HasPrefix(rest, "items_page_"):
		page := parsePage(strings.TrimPrefix(rest, "items_page_"))
		kb := itemsKeyboard(flow, page)
		if err := c.tr.Edit(ctx, ev.ChatID, ev.MessageID, pickText(flow), &kb); err != nil {
			return err
		}
		return c.tr.Ack(ctx, ev.TapID)

	case strings.HasPrefix(rest, "add_"), strings.HasPrefix(rest, "remove_"):
		return c.adjustBasket(ctx, ev, flow, rest)

	case strings.HasPrefix(rest, "date_"):
		date := strings.TrimPrefix(rest, "date_")
		c.sessions.Ensure(ev.UserID).SetReturnDate(date)
		_, kb := flowMenu(flow)
		if err := c.tr.Edit(ctx, ev.ChatID, ev.MessageID, textDateChosen(mode, date), &kb); err != nil {
			return err
		}
		return c.tr.Ack(ctx, ev.TapID)
	}

	return c.tr.Ack(ctx, ev.TapID)
}

// adjustBasket applies one add/remove tap and re-renders the basket text
// over the item picker.
func (c *Controller) adjustBasket(ctx context.Context, ev Event, flow, rest string) error {
	action, idxStr, _ := strings.Cut(rest, "_")
	idx, err := strconv.Atoi(idxStr)
	if err != nil {
		return c.tr.Ack(ctx, ev.TapID)
	}
	item, ok := catalog.Name(idx)
	if !ok {
		return c.tr.Ack(ctx, ev.TapID)
	}

	session := c.sessions.Ensure(ev.UserID)
	if action == "add" {
		session.Add(item)
	} else {
		session.Remove(item)
	}

	text := depot.RenderBasket(session, basketTitle(flow))
	kb := itemsKeyboard(flow, 0)
	if err := c.tr.Edit(ctx, ev.ChatID, ev.MessageID, text, &kb); err != nil {
		return err
	}
	return c.tr.Ack(ctx, ev.TapID)
}

// confirm runs the commit and renders either the acknowledgment plus main
// menu, or a non-blocking alert leaving the current view open.
func (c *Controller) confirm(ctx context.Context, ev Event, flow string, mode depot.Mode) error {
	session := c.sessions.Ensure(ev.UserID)
	actor := depot.Actor{ID: ev.UserID, Username: ev.Username}

	applied, err := c.engine.Commit(ctx, session, actor)
	if err != nil {
		var short *depot.InsufficientStockError
		switch {
		case errors.Is(err, depot.ErrEmptyBasket):
			return c.tr.Alert(ctx, ev.TapID, emptyAlert(mode))
		case errors.As(err, &short):
			return c.tr.Alert(ctx, ev.TapID, alertShortStock(short.Item))
		default:
			return c.tr.Alert(ctx, ev.TapID, alertSaveFailed)
		}
	}
	done := textOrderDone
	if mode == depot.ModeReturn {
		done = textReturnDone
	}
	if err := c.tr.Edit(ctx, ev.ChatID, ev.MessageID, depot.RenderCounts(applied, done), nil); err != nil {
		return err
	}
	if err := c.tr.SendMenu(ctx, ev.ChatID, textMainMenu, mainMenuRows()); err != nil {
		return err
	}
	return c.tr.Ack(ctx, ev.TapID)
}

// stockPage renders one ledger page in place.
func (c *Controller) stockPage(ctx context.Context, ev Event, page int) error {
	ledger, err := c.ledger.Load(ctx)
	if err != nil {
		return err
	}
	text, pages := renderStockPage(ledger, page)
	if err := c.tr.Edit(ctx, ev.ChatID, ev.MessageID, text, stockNav(page, pages)); err != nil {
		return err
	}
	return c.tr.Ack(ctx, ev.TapID)
}

// =============================================================================
// HELPERS
// =============================================================================

func pickText(flow string) string {
	if flow == "return" {
		return textPickReturn
	}
	return textPickItems
}

func basketTitle(flow string) string {
	if flow == "return" {
		return titleReturnBasket
	}
	return titleOrderBasket
}

func emptyAlert(mode depot.Mode) string {
	if mode == depot.ModeReturn {
		return alertEmptyReturn
	}
	return alertEmptyOrder
}

// parsePage parses a page index from a callback payload; malformed input
// falls back to the first page rather than failing the tap.
func parsePage(s string) int {
	page, err := strconv.Atoi(s)
	if err != nil || page < 0 {
		return 0
	}
	return page
}
