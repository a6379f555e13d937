package checkout

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/Mederbek08/muslim-kg/internal/currency"
	"github.com/Mederbek08/muslim-kg/internal/domain"
)

func testComposer() *Composer {
	return NewComposer(currency.NewFormatter(language.Russian, "сом"))
}

func lineItem(id, title string, price float64, quantity int) domain.LineItem {
	return domain.LineItem{
		Product:  domain.Product{ID: id, Title: title, Price: price},
		Quantity: quantity,
	}
}

func TestMessage_Scenario(t *testing.T) {
	c := testComposer()
	f := currency.NewFormatter(language.Russian, "сом")

	msg := c.Message([]domain.LineItem{
		lineItem("A", "Widget", 100, 2),
		lineItem("B", "Gadget", 50, 1),
	})

	assert.Contains(t, msg, "1. Widget x 2 (")
	assert.Contains(t, msg, "2. Gadget x 1 (")
	assert.Contains(t, msg, "Итого к оплате: "+f.Format(250))
	assert.Contains(t, msg, "👋")
	assert.Contains(t, msg, "---")
	assert.True(t, strings.HasSuffix(msg, "Прошу подтвердить наличие и детали заказа."))
}

func TestMessage_LineStructure(t *testing.T) {
	c := testComposer()

	msg := c.Message([]domain.LineItem{lineItem("A", "Widget", 100, 2)})
	lines := strings.Split(msg, "\n")

	// greeting, blank, one item, rule, total, blank, confirmation
	require.Len(t, lines, 7)
	assert.Equal(t, "👋 Новый заказ с сайта!", lines[0])
	assert.Equal(t, "", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "1. Widget x 2 ("))
	assert.Equal(t, "---", lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "💰 Итого к оплате: "))
	assert.Equal(t, "", lines[5])
}

func TestCheckoutLink_Shape(t *testing.T) {
	c := testComposer()

	link := c.CheckoutLink([]domain.LineItem{lineItem("A", "Widget", 100, 1)}, "996999050207")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/996999050207?text="))

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", parsed.Host)
	assert.Equal(t, "/996999050207", parsed.Path)
}

func TestCheckoutLink_EncodingRoundTrip(t *testing.T) {
	c := testComposer()

	// Titles with spaces, parentheses and non-ASCII letters must survive
	// a single decode byte for byte.
	items := []domain.LineItem{
		lineItem("A", "Коврик для намаза (большой)", 1250, 2),
		lineItem("B", "Tasbih 99 beads", 340.5, 1),
	}

	link := c.CheckoutLink(items, "996999050207")
	payload, ok := strings.CutPrefix(link, "https://wa.me/996999050207?text=")
	require.True(t, ok)

	decoded, err := url.QueryUnescape(payload)
	require.NoError(t, err)
	assert.Equal(t, c.Message(items), decoded)
}

func TestCheckoutLink_NoRawUnsafeCharacters(t *testing.T) {
	c := testComposer()

	link := c.CheckoutLink([]domain.LineItem{lineItem("A", "Widget (red)", 100, 1)}, "996999050207")
	payload := link[strings.Index(link, "?text=")+len("?text="):]

	for _, ch := range []string{" ", "\n", "(", ")", "+", "₽", "сом"} {
		assert.NotContains(t, payload, ch)
	}
}

func TestComposer_Options(t *testing.T) {
	c := NewComposer(
		currency.NewFormatter(language.English, "KGS"),
		WithBaseURL("https://api.whatsapp.com/send/"),
		WithGreeting("New order!"),
		WithTotalLabel("Total"),
		WithConfirmation("Please confirm."),
	)

	items := []domain.LineItem{lineItem("A", "Widget", 100, 1)}
	msg := c.Message(items)
	assert.Contains(t, msg, "👋 New order!")
	assert.Contains(t, msg, "💰 Total: ")
	assert.True(t, strings.HasSuffix(msg, "Please confirm."))

	link := c.CheckoutLink(items, "15551234567")
	assert.True(t, strings.HasPrefix(link, "https://api.whatsapp.com/send/15551234567?text="))
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "a%20b", escape("a b"))
	assert.Equal(t, "a%0Ab", escape("a\nb"))
	assert.Equal(t, "%28x%29", escape("(x)"))
	assert.Equal(t, "1%2B1", escape("1+1"))
	assert.Equal(t, "abc-_.~", escape("abc-_.~"))
}
