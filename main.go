// Command bazaar is an interactive shopping client: it browses the remote
// catalog, maintains a local cart and drives the checkout sequence (shipping
// details, order submission, UPI payment handoff) against the configured
// backend.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"bazaar/internal/cart"
	"bazaar/internal/catalog"
	"bazaar/internal/checkout"
	"bazaar/internal/config"
	"bazaar/internal/identity"
	"bazaar/internal/journal"
	"bazaar/internal/models"
)

// consoleNotifier prints user-visible notifications to stdout.
type consoleNotifier struct{}

func (consoleNotifier) Notify(message string) {
	fmt.Println(">>", message)
}

// osLauncher hands a URI to the platform opener, which shows the user a
// chooser of applications able to handle it. No result is awaited.
type osLauncher struct{}

func (osLauncher) Open(uri string) error {
	for _, opener := range []string{"xdg-open", "open"} {
		path, err := exec.LookPath(opener)
		if err != nil {
			continue
		}
		fmt.Println("Opening payment link:", uri)
		return exec.Command(path, uri).Start()
	}
	return errors.New("no URI handler found on this system")
}

func main() {
	cfg := config.Load()

	if cfg.AuthToken != "" {
		if id, err := identity.FromToken(cfg.AuthToken); err != nil {
			log.Printf("Ignoring malformed auth token: %v", err)
		} else if id.Name != "" {
			fmt.Println("Welcome back,", id.Name)
		}
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	cache := catalog.NewCache(catalog.NewHTTPFetcher(cfg.APIBaseURL, httpClient))
	store := cart.NewStore(cache)
	submitter := checkout.NewHTTPSubmitter(cfg.APIBaseURL, cfg.AuthToken, httpClient)

	var recorder checkout.Recorder
	var orderLog *journal.Journal
	if cfg.JournalPath != "" {
		j, err := journal.Open(cfg.JournalPath)
		if err != nil {
			log.Printf("Order journal disabled: %v", err)
		} else {
			orderLog = j
			recorder = j
		}
	}

	orch := checkout.NewOrchestrator(store, submitter, osLauncher{}, consoleNotifier{}, recorder, checkout.Payee{
		ID:   cfg.UPIPayeeID,
		Name: cfg.UPIPayeeName,
		Note: cfg.UPINote,
	})

	session := &session{
		cfg:      cfg,
		cache:    cache,
		store:    store,
		orch:     orch,
		orderLog: orderLog,
		in:       bufio.NewScanner(os.Stdin),
	}
	session.run()
}

// session is the interactive loop's state: the wired engine plus the product
// list from the most recent listing, so items can be referenced by number.
type session struct {
	cfg      config.Config
	cache    *catalog.Cache
	store    *cart.Store
	orch     *checkout.Orchestrator
	orderLog *journal.Journal
	in       *bufio.Scanner
	listed   []models.Product
}

func (s *session) run() {
	fmt.Printf("Connected to %s — type 'help' for commands\n", s.cfg.APIBaseURL)
	s.refresh()

	for {
		fmt.Print("> ")
		if !s.in.Scan() {
			return
		}
		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "help":
			s.help()
		case "refresh":
			s.refresh()
		case "products", "ls":
			s.listProducts(arg)
		case "add":
			s.mutate(arg, s.store.AddOrIncrement)
		case "sub":
			s.mutate(arg, s.store.Decrement)
		case "rm":
			s.mutate(arg, s.store.Remove)
		case "cart":
			s.showCart()
		case "clear":
			s.store.Clear()
			fmt.Println("Cart cleared")
		case "checkout":
			s.checkout()
		case "orders":
			s.showOrders()
		case "quit", "exit":
			return
		default:
			fmt.Println("Unknown command; type 'help'")
		}
	}
}

func (s *session) help() {
	fmt.Println(`Commands:
  products [query]   list catalog products, optionally filtered by name
  refresh            re-fetch the catalog
  add <n|id>         add product (by listing number or ID) / increment
  sub <n|id>         decrement quantity, removing the line at 1
  rm <n|id>          remove the line entirely
  cart               show the cart with totals
  clear              empty the cart
  checkout           enter shipping details and place the order
  orders             show locally journaled orders
  quit               leave`)
}

func (s *session) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.HTTPTimeout)
	defer cancel()
	if err := s.cache.Refresh(ctx); err != nil {
		// The previous snapshot, if any, stays usable.
		fmt.Println(">> Could not refresh catalog:", err)
		return
	}
	fmt.Printf("Catalog refreshed: %d products\n", len(s.cache.Products()))
}

func (s *session) listProducts(query string) {
	s.listed = s.cache.Filter(query)
	if len(s.listed) == 0 {
		fmt.Println("No products found")
		return
	}
	for i, p := range s.listed {
		fmt.Printf("%3d. %-32s ₹%.2f\n", i+1, p.Name, p.Price)
	}
}

// resolveProduct turns a listing number or raw product ID into a product ID.
func (s *session) resolveProduct(arg string) (string, bool) {
	if arg == "" {
		fmt.Println("Which product? Use a listing number or product ID")
		return "", false
	}
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(s.listed) {
			fmt.Println("No such listing number; run 'products' first")
			return "", false
		}
		return s.listed[n-1].ID, true
	}
	return arg, true
}

func (s *session) mutate(arg string, op func(productID string)) {
	id, ok := s.resolveProduct(arg)
	if !ok {
		return
	}
	op(id)
	s.showCart()
}

func (s *session) showCart() {
	view := s.store.Snapshot()
	if len(view.Items) == 0 {
		if s.store.Len() > 0 {
			fmt.Println("Cart items are not in the current catalog; try 'refresh'")
		} else {
			fmt.Println("Your cart is empty")
		}
		return
	}
	for _, item := range view.Items {
		fmt.Printf("  %-32s ₹%.2f x %d\n", item.Product.Name, item.Product.Price, item.Quantity)
	}
	fmt.Printf("  Total: ₹%.2f\n", view.Total)
}

func (s *session) prompt(label string) string {
	fmt.Print(label, ": ")
	if !s.in.Scan() {
		return ""
	}
	return strings.TrimSpace(s.in.Text())
}

func (s *session) checkout() {
	if err := s.orch.Begin(); err != nil {
		fmt.Println(">>", err)
		return
	}

	details := models.ShippingDetails{
		Name:     s.prompt("Name"),
		Phone:    s.prompt("Phone"),
		Address:  s.prompt("Address"),
		Email:    s.prompt("Email (optional)"),
		Whatsapp: s.prompt("WhatsApp (optional)"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.HTTPTimeout)
	defer cancel()

	err := s.orch.Confirm(ctx, details)
	var verr *checkout.ValidationError
	if errors.As(err, &verr) {
		fmt.Println(">>", verr)
		if cancelErr := s.orch.Cancel(); cancelErr != nil {
			fmt.Println(">>", cancelErr)
		}
		return
	}
	if err != nil {
		// Submission and handoff failures have already been notified.
		return
	}
}

func (s *session) showOrders() {
	if s.orderLog == nil {
		fmt.Println("Order journal is disabled")
		return
	}
	entries, err := s.orderLog.Recent(10)
	if err != nil {
		fmt.Println(">>", err)
		return
	}
	if len(entries) == 0 {
		fmt.Println("No orders placed yet")
		return
	}
	for _, e := range entries {
		fmt.Printf("  %s  ₹%.2f  %d item(s)  %s  %s\n",
			e.PlacedAt.Format("2006-01-02 15:04"), e.TotalAmount, e.ItemCount, e.PaymentMethod, e.OrderID)
	}
}
