package nav

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Domenick1991/skywings/internal/domain"
)

// Тест 1: Стартовое состояние без восстановленной сессии
func TestController_StartsAtHome(t *testing.T) {
	c := NewController(false, "")
	screen, tab := c.Current()
	assert.Equal(t, ScreenHome, screen)
	assert.Empty(t, tab)
}

// Тест 2: Восстановленная сессия сразу попадает в кабинет
func TestController_RestoredSession(t *testing.T) {
	c := NewController(true, domain.RoleCustomer)
	screen, tab := c.Current()
	assert.Equal(t, ScreenDashboard, screen)
	assert.Equal(t, TabSearch, tab)

	admin := NewController(true, domain.RoleAdmin)
	_, adminTab := admin.Current()
	assert.Equal(t, TabFlightManagement, adminTab)
}

// Тест 3: Кабинет недостижим через Goto
func TestController_Goto_DashboardRejected(t *testing.T) {
	c := NewController(false, "")
	err := c.Goto(ScreenDashboard)
	assert.ErrorIs(t, err, ErrIllegalTransition)

	screen, _ := c.Current()
	assert.Equal(t, ScreenHome, screen)
}

// Тест 4: Переходы между преднавигационными экранами
func TestController_Goto_PreAuthScreens(t *testing.T) {
	c := NewController(false, "")

	assert.NoError(t, c.Goto(ScreenLogin))
	assert.NoError(t, c.Goto(ScreenSignup))
	assert.NoError(t, c.Goto(ScreenHome))

	// из кабинета Goto запрещен
	c.LoginSucceeded(domain.RoleCustomer)
	assert.ErrorIs(t, c.Goto(ScreenLogin), ErrIllegalTransition)
}

// Тест 5: Успешный вход выбирает вкладку по роли
func TestController_LoginSucceeded(t *testing.T) {
	c := NewController(false, "")
	c.LoginSucceeded(domain.RoleCustomer)
	screen, tab := c.Current()
	assert.Equal(t, ScreenDashboard, screen)
	assert.Equal(t, TabSearch, tab)

	a := NewController(false, "")
	a.LoginSucceeded(domain.RoleAdmin)
	_, adminTab := a.Current()
	assert.Equal(t, TabFlightManagement, adminTab)
}

// Тест 6: Выход возвращает на главный экран из любого состояния
func TestController_Logout(t *testing.T) {
	c := NewController(false, "")
	c.LoginSucceeded(domain.RoleAdmin)
	assert.NoError(t, c.SetTab(TabBookingOverview))

	c.Logout()

	screen, tab := c.Current()
	assert.Equal(t, ScreenHome, screen)
	assert.Empty(t, tab)

	// после выхода вкладки недоступны
	assert.ErrorIs(t, c.SetTab(TabSearch), ErrIllegalTransition)
}

// Тест 7: Вкладки ограничены ролью
func TestController_SetTab_RoleBound(t *testing.T) {
	customer := NewController(false, "")
	customer.LoginSucceeded(domain.RoleCustomer)

	for _, tab := range []Tab{TabSearch, TabBook, TabReservations, TabFindBooking} {
		assert.NoError(t, customer.SetTab(tab))
	}
	assert.ErrorIs(t, customer.SetTab(TabFlightManagement), ErrUnknownTab)
	assert.ErrorIs(t, customer.SetTab(TabBookingOverview), ErrUnknownTab)

	admin := NewController(false, "")
	admin.LoginSucceeded(domain.RoleAdmin)

	for _, tab := range []Tab{TabFlightManagement, TabBookingOverview} {
		assert.NoError(t, admin.SetTab(tab))
	}
	assert.ErrorIs(t, admin.SetTab(TabSearch), ErrUnknownTab)
}

// Тест 8: Отложенный переход срабатывает
func TestController_ScheduleTab_Fires(t *testing.T) {
	c := NewController(false, "")
	c.LoginSucceeded(domain.RoleCustomer)
	assert.NoError(t, c.SetTab(TabBook))

	c.ScheduleTab(TabReservations, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		_, tab := c.Current()
		return tab == TabReservations
	}, time.Second, 5*time.Millisecond)
}

// Тест 9: Ручной переход отменяет отложенный
func TestController_ScheduleTab_CancelledByManualTransition(t *testing.T) {
	c := NewController(false, "")
	c.LoginSucceeded(domain.RoleCustomer)
	assert.NoError(t, c.SetTab(TabBook))

	c.ScheduleTab(TabReservations, 20*time.Millisecond)
	assert.NoError(t, c.SetTab(TabFindBooking))

	time.Sleep(60 * time.Millisecond)
	_, tab := c.Current()
	assert.Equal(t, TabFindBooking, tab)
}

// Тест 10: Повторное взведение отменяет предыдущий таймер
func TestController_ScheduleTab_Rearm(t *testing.T) {
	c := NewController(false, "")
	c.LoginSucceeded(domain.RoleCustomer)

	c.ScheduleTab(TabReservations, 20*time.Millisecond)
	c.ScheduleTab(TabFindBooking, 40*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	_, tab := c.Current()
	assert.Equal(t, TabSearch, tab)

	assert.Eventually(t, func() bool {
		_, current := c.Current()
		return current == TabFindBooking
	}, time.Second, 5*time.Millisecond)
}

// Тест 11: Выход отменяет отложенный переход
func TestController_Logout_CancelsScheduled(t *testing.T) {
	c := NewController(false, "")
	c.LoginSucceeded(domain.RoleCustomer)
	c.ScheduleTab(TabReservations, 20*time.Millisecond)

	c.Logout()

	time.Sleep(60 * time.Millisecond)
	screen, tab := c.Current()
	assert.Equal(t, ScreenHome, screen)
	assert.Empty(t, tab)
}
