// Package checkout turns a cart snapshot into a pre-filled deep link to
// the shop's messaging handoff. Composing is pure: no application state
// changes, the caller decides whether to navigate, close the panel or
// clear the cart afterwards.
package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Mederbek08/muslim-kg/internal/currency"
	"github.com/Mederbek08/muslim-kg/internal/domain"
)

// DefaultBaseURL is the messaging service's deep-link entry point.
const DefaultBaseURL = "https://wa.me"

// Composer renders order messages and checkout links. The text blocks
// default to the storefront's wording and are configurable so tests and
// other shops can swap them without touching the format.
type Composer struct {
	baseURL      string
	greeting     string
	totalLabel   string
	confirmation string
	money        *currency.Formatter
}

type Option func(*Composer)

func WithBaseURL(u string) Option    { return func(c *Composer) { c.baseURL = strings.TrimRight(u, "/") } }
func WithGreeting(s string) Option   { return func(c *Composer) { c.greeting = s } }
func WithTotalLabel(s string) Option { return func(c *Composer) { c.totalLabel = s } }
func WithConfirmation(s string) Option {
	return func(c *Composer) { c.confirmation = s }
}

func NewComposer(f *currency.Formatter, opts ...Option) *Composer {
	c := &Composer{
		baseURL:      DefaultBaseURL,
		greeting:     "Новый заказ с сайта!",
		totalLabel:   "Итого к оплате",
		confirmation: "Прошу подтвердить наличие и детали заказа.",
		money:        f,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Message renders the order summary: greeting header, one numbered line
// per cart item with its quantity and line total, a rule, the grand
// total and the confirmation request. Lines are joined with literal
// newlines; encoding for transport happens once, in CheckoutLink.
func (c *Composer) Message(items []domain.LineItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "👋 %s\n\n", c.greeting)

	total := 0.0
	for i, li := range items {
		fmt.Fprintf(&b, "%d. %s x %d (%s)\n", i+1, li.Product.Title, li.Quantity, c.money.Format(li.Subtotal()))
		total += li.Subtotal()
	}

	fmt.Fprintf(&b, "---\n💰 %s: %s\n\n%s", c.totalLabel, c.money.Format(total), c.confirmation)
	return b.String()
}

// CheckoutLink builds the handoff URL for the configured destination
// handle. Callers must guard against an empty cart; composing is not
// where that rule lives.
func (c *Composer) CheckoutLink(items []domain.LineItem, handle string) string {
	return fmt.Sprintf("%s/%s?text=%s", c.baseURL, handle, escape(c.Message(items)))
}

// escape percent-encodes the message as a single opaque query value:
// everything outside the RFC 3986 unreserved set is escaped, including
// spaces (as %20, not +), newlines, parentheses and the currency
// symbol. Decoding the payload must give back the message byte for
// byte.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
