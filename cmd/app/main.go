package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/skywings/config"
	"github.com/Domenick1991/skywings/internal/domain"
	"github.com/Domenick1991/skywings/internal/handoff"
	"github.com/Domenick1991/skywings/internal/nav"
	"github.com/Domenick1991/skywings/internal/remote"
	"github.com/Domenick1991/skywings/internal/service/booking"
	"github.com/Domenick1991/skywings/internal/service/catalog"
	"github.com/Domenick1991/skywings/internal/service/inventory"
	"github.com/Domenick1991/skywings/internal/service/reservations"
	"github.com/Domenick1991/skywings/internal/session"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The store and the client reference each other: the client reads
	// the bearer token from the store at dispatch time.
	var store *session.Store
	client := remote.NewClient(
		cfg.API.BaseURL,
		time.Duration(cfg.API.TimeoutSeconds)*time.Second,
		remote.TokenFunc(func() string {
			if store == nil {
				return ""
			}
			return store.Token()
		}),
	)
	store = session.NewStore(cfg.Session.File, client)

	user, restored := store.Restore()
	role := domain.RoleCustomer
	if restored {
		role = user.Role
	}
	navc := nav.NewController(restored, role)

	slot := handoff.NewSlot()
	catalogSvc := catalog.NewService(client, slot, navc)

	var bookingOpts []booking.Option
	if cfg.Booking.RequirePassport {
		bookingOpts = append(bookingOpts, booking.WithPassportRequired())
	}
	if cfg.Booking.RedirectDelaySeconds > 0 {
		bookingOpts = append(bookingOpts, booking.WithRedirectDelay(time.Duration(cfg.Booking.RedirectDelaySeconds)*time.Second))
	}
	bookingSvc := booking.NewService(client, slot, navc, bookingOpts...)

	a := &app{
		session:      store,
		nav:          navc,
		catalog:      catalogSvc,
		booking:      bookingSvc,
		reservations: reservations.NewService(client),
		inventory:    inventory.NewService(client),
		in:           os.Stdin,
	}
	a.run(ctx)
}
