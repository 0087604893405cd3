package guides

import (
	"fmt"
	"strings"
)

// Card is the display state of one rendered guide.
type Card struct {
	Title    string
	Summary  string
	JSON     string
	Expanded bool
	Hidden   bool

	search string
}

// Deck is the ordered set of rendered cards. Filtering and toggling only
// change display state; the guides themselves live in the Session.
type Deck struct {
	cards []Card
}

// Render clears the deck and builds one collapsed, visible card per guide.
func (d *Deck) Render(gs []Guide) {
	d.cards = make([]Card, 0, len(gs))
	for i, g := range gs {
		d.cards = append(d.cards, Card{
			Title:   fmt.Sprintf("Guide %d", i+1),
			Summary: g.Summary(),
			JSON:    g.Pretty(),
			search:  g.SearchText(),
		})
	}
}

// Len is the number of rendered cards, hidden ones included.
func (d *Deck) Len() int { return len(d.cards) }

// Card returns the card at i.
func (d *Deck) Card(i int) (Card, bool) {
	if i < 0 || i >= len(d.cards) {
		return Card{}, false
	}
	return d.cards[i], true
}

// Cards returns a copy of every card.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Toggle flips the JSON visibility of card i only.
func (d *Deck) Toggle(i int) bool {
	if i < 0 || i >= len(d.cards) {
		return false
	}
	d.cards[i].Expanded = !d.cards[i].Expanded
	return true
}

// Filter hides every card whose lower-cased JSON does not contain the
// lower-cased query. The empty query shows all cards.
func (d *Deck) Filter(query string) {
	q := strings.ToLower(query)
	for i := range d.cards {
		d.cards[i].Hidden = !strings.Contains(d.cards[i].search, q)
	}
}

// Visible returns the indexes of cards that are not hidden, in order.
func (d *Deck) Visible() []int {
	idx := make([]int, 0, len(d.cards))
	for i, c := range d.cards {
		if !c.Hidden {
			idx = append(idx, i)
		}
	}
	return idx
}
