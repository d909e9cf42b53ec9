package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/techcart/storefront/internal/core/domain"
	"github.com/techcart/storefront/internal/core/port"
)

var _ port.CatalogView = (*Prompt)(nil)

// Prompt is the inbound adapter: an interactive loop translating
// terminal commands into service calls and rendering accepted catalog
// updates.
type Prompt struct {
	catalog port.CatalogBrowser
	cart    port.CartAdder
	auth    port.Authenticator

	in io.Reader

	mu  sync.Mutex
	out io.Writer
}

func NewPrompt(
	catalog port.CatalogBrowser,
	cart port.CartAdder,
	auth port.Authenticator,
	in io.Reader,
	out io.Writer,
) *Prompt {
	return &Prompt{
		catalog: catalog,
		cart:    cart,
		auth:    auth,
		in:      in,
		out:     out,
	}
}

// Run blocks until quit, EOF or context cancellation.
func (p *Prompt) Run(ctx context.Context, stopFn context.CancelFunc) {
	const op = "Prompt.Run"
	defer stopFn()

	p.printHelp()

	scanner := bufio.NewScanner(p.in)
	for {
		p.print("> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				slog.Error("failed to read input", "op", op, "err", err)
			}
			return
		}
		if ctx.Err() != nil {
			return
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if quit := p.dispatch(ctx, fields[0], fields[1:]); quit {
			return
		}
	}
}

func (p *Prompt) dispatch(ctx context.Context, cmd string, args []string) (quit bool) {
	switch cmd {
	case "search":
		p.catalog.SetTerm(ctx, strings.Join(args, " "))
	case "category":
		p.handleCategory(ctx, args)
	case "categories":
		p.printCategories()
	case "list":
		p.RenderCatalog(p.catalog.Snapshot())
	case "add":
		p.handleAdd(ctx, args)
	case "register":
		p.handleRegister(ctx, args)
	case "login":
		p.handleLogin(ctx, args)
	case "mode":
		p.println("mode: " + p.auth.Mode().String())
	case "help":
		p.printHelp()
	case "quit", "exit":
		return true
	default:
		p.println("unknown command, try 'help'")
	}
	return false
}

func (p *Prompt) handleCategory(ctx context.Context, args []string) {
	if len(args) != 1 {
		p.println("usage: category <slug|all>")
		return
	}
	p.catalog.SetCategory(ctx, args[0])
}

func (p *Prompt) handleAdd(ctx context.Context, args []string) {
	if len(args) < 1 || len(args) > 2 {
		p.println("usage: add <product-id> [quantity]")
		return
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		p.println("product id must be a number")
		return
	}

	qty := 1
	if len(args) == 2 {
		qty, err = strconv.Atoi(args[1])
		if err != nil || qty < 1 {
			p.println("quantity must be a positive number")
			return
		}
	}

	err = p.cart.AddToCart(ctx, id, qty)
	switch {
	case err == nil:
		p.println("added to cart")
	case errors.Is(err, domain.ErrUnauthenticated):
		p.println("please login first")
	default:
		p.println("failed to add to cart")
		slog.Warn("add to cart failed", "err", err)
	}
}

func (p *Prompt) handleRegister(ctx context.Context, args []string) {
	if len(args) != 3 {
		p.println("usage: register <username> <email> <password>")
		return
	}

	p.auth.SwitchMode(domain.RegisterMode)
	err := p.auth.Register(ctx, args[0], args[1], args[2])
	if err != nil {
		p.println("registration failed: " + failureDetail(err))
		return
	}
	p.println("registered, now login")
}

func (p *Prompt) handleLogin(ctx context.Context, args []string) {
	if len(args) != 2 {
		p.println("usage: login <username> <password>")
		return
	}

	p.auth.SwitchMode(domain.LoginMode)
	err := p.auth.Login(ctx, args[0], args[1])
	if err != nil {
		p.println("login failed: " + failureDetail(err))
		return
	}
	p.println("logged in")
}

// RenderCatalog prints an accepted catalog state. Stale responses are
// discarded upstream and never arrive here.
func (p *Prompt) RenderCatalog(state domain.CatalogState) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch state.Phase {
	case domain.PhaseLoading:
		fmt.Fprintln(p.out, "loading products...")
		return
	case domain.PhaseIdle:
		fmt.Fprintln(p.out, "catalog not loaded, run 'search' or 'category'")
		return
	}

	if state.Err {
		fmt.Fprintln(p.out, "failed to load products, try again")
		return
	}

	if len(state.Products) == 0 {
		fmt.Fprintln(p.out, "no products found")
		return
	}

	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tBRAND\tCATEGORY\tPRICE")
	for _, pr := range state.Products {
		brand := pr.Brand
		if brand == "" {
			brand = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t$%.2f\n",
			pr.ID, pr.Name, brand, pr.Category, pr.Price)
	}
	_ = w.Flush()
}

func (p *Prompt) printCategories() {
	cs := p.catalog.Categories()
	if len(cs) == 0 {
		p.println("no categories loaded")
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, c := range cs {
		fmt.Fprintf(p.out, "%s\t%s\n", c.Slug, c.Name)
	}
}

func (p *Prompt) printHelp() {
	p.println(`commands:
  search <term>                      search products
  category <slug|all>                filter by category
  categories                         show known categories
  list                               show current product list
  add <product-id> [quantity]        add product to cart
  register <username> <email> <pwd>  create an account
  login <username> <pwd>             sign in
  mode                               show auth form mode
  quit                               leave`)
}

func (p *Prompt) print(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprint(p.out, s)
}

func (p *Prompt) println(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, s)
}

func failureDetail(err error) string {
	var ae domain.AuthError
	if errors.As(err, &ae) {
		return ae.Detail
	}
	return "request failed"
}
