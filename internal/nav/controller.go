package nav

import (
	"errors"
	"sync"
	"time"

	"github.com/Domenick1991/skywings/internal/domain"
)

type Screen string

const (
	ScreenHome      Screen = "home"
	ScreenLogin     Screen = "login"
	ScreenSignup    Screen = "signup"
	ScreenDashboard Screen = "dashboard"
)

type Tab string

const (
	TabSearch           Tab = "search"
	TabBook             Tab = "book"
	TabReservations     Tab = "reservations"
	TabFindBooking      Tab = "findBooking"
	TabFlightManagement Tab = "flightManagement"
	TabBookingOverview  Tab = "bookingOverview"
)

var (
	ErrIllegalTransition = errors.New("illegal navigation transition")
	ErrUnknownTab        = errors.New("tab not available for this role")
)

var customerTabs = map[Tab]bool{
	TabSearch:       true,
	TabBook:         true,
	TabReservations: true,
	TabFindBooking:  true,
}

var adminTabs = map[Tab]bool{
	TabFlightManagement: true,
	TabBookingOverview:  true,
}

// Controller is a flat finite-state machine over the client's screens.
// There is no history stack: back-navigation always targets a fixed
// ancestor. The only timer in the system lives here and any manual
// transition cancels it.
type Controller struct {
	mu       sync.Mutex
	screen   Screen
	tab      Tab
	role     domain.Role
	timer    *time.Timer
	timerGen uint64
}

// NewController starts at dashboard when a session was restored, home otherwise.
func NewController(restored bool, role domain.Role) *Controller {
	c := &Controller{screen: ScreenHome}
	if restored {
		c.screen = ScreenDashboard
		c.role = role
		c.tab = defaultTab(role)
	}
	return c
}

func (c *Controller) Current() (Screen, Tab) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen, c.tab
}

// Goto handles the explicit pre-auth transitions. Dashboard is not
// reachable this way: the only path in is LoginSucceeded.
func (c *Controller) Goto(screen Screen) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelScheduledLocked()

	switch screen {
	case ScreenHome, ScreenLogin, ScreenSignup:
		if c.screen == ScreenDashboard {
			return ErrIllegalTransition
		}
		c.screen = screen
		return nil
	default:
		return ErrIllegalTransition
	}
}

// LoginSucceeded forces the transition into dashboard regardless of the
// prior state.
func (c *Controller) LoginSucceeded(role domain.Role) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelScheduledLocked()
	c.screen = ScreenDashboard
	c.role = role
	c.tab = defaultTab(role)
}

// Logout forces home from any state.
func (c *Controller) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelScheduledLocked()
	c.screen = ScreenHome
	c.role = ""
	c.tab = ""
}

// SetTab is a manual dashboard sub-state transition. Any sub-state is
// reachable from any other, within the caller's role.
func (c *Controller) SetTab(tab Tab) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelScheduledLocked()
	return c.setTabLocked(tab)
}

// ForceTab serves the forced transitions: catalog select enters book,
// a successful booking enters reservations.
func (c *Controller) ForceTab(tab Tab) error {
	return c.SetTab(tab)
}

// ScheduleTab arms the cancellable delayed transition. A manual
// transition before the delay elapses wins: the scheduled one must not
// fire over it.
func (c *Controller) ScheduleTab(tab Tab, delay time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelScheduledLocked()
	gen := c.timerGen
	c.timer = time.AfterFunc(delay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if gen != c.timerGen {
			// superseded or cancelled by a manual transition
			return
		}
		c.timer = nil
		_ = c.setTabLocked(tab)
	})
}

func (c *Controller) setTabLocked(tab Tab) error {
	if c.screen != ScreenDashboard {
		return ErrIllegalTransition
	}
	allowed := customerTabs
	if c.role == domain.RoleAdmin {
		allowed = adminTabs
	}
	if !allowed[tab] {
		return ErrUnknownTab
	}
	c.tab = tab
	return nil
}

func (c *Controller) cancelScheduledLocked() {
	c.timerGen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func defaultTab(role domain.Role) Tab {
	if role == domain.RoleAdmin {
		return TabFlightManagement
	}
	return TabSearch
}
