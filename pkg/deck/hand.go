package deck

import "sort"

var cardOrder = buildCardOrder()

func buildCardOrder() map[Card]int {
	order := make(map[Card]int, Size)
	for _, book := range books {
		for _, card := range book {
			order[card] = len(order)
		}
	}

	return order
}

// Hand represents the cards a player holds
// A card appears at most once since the deck has no duplicates
type Hand []Card

func (h Hand) Len() int {
	return len(h)
}

// Less orders cards by book, then by their position within the book
func (h Hand) Less(i, j int) bool {
	return cardOrder[h[i]] < cardOrder[h[j]]
}

func (h Hand) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

// AddCard adds a card to the hand
func (h *Hand) AddCard(card Card) {
	if h.HasCard(card) {
		return
	}

	*h = append(*h, card)
}

// HasCard returns true if the hand contains the specified card
func (h Hand) HasCard(card Card) bool {
	for _, c := range h {
		if c == card {
			return true
		}
	}

	return false
}

// HasBook returns true if the hand holds at least one card of the book
func (h Hand) HasBook(book Book) bool {
	for _, c := range h {
		if c.Book() == book {
			return true
		}
	}

	return false
}

// Discard removes the card from the hand
// Returns false if the card was not in the hand
func (h *Hand) Discard(card Card) bool {
	found := false
	newHand := make(Hand, 0, len(*h))
	for _, c := range *h {
		if c == card {
			found = true
		} else {
			newHand = append(newHand, c)
		}
	}

	*h = newHand
	return found
}

// RemoveBook removes every card of the book and returns the removed cards
func (h *Hand) RemoveBook(book Book) []Card {
	removed := make([]Card, 0)
	kept := make(Hand, 0, len(*h))
	for _, c := range *h {
		if c.Book() == book {
			removed = append(removed, c)
		} else {
			kept = append(kept, c)
		}
	}

	*h = kept
	return removed
}

// Sorted returns a copy of the hand in book order
func (h Hand) Sorted() Hand {
	h2 := h.Clone()
	sort.Sort(h2)
	return h2
}

// Names returns the human-readable names of the cards
func (h Hand) Names() []string {
	names := make([]string, len(h))
	for i, c := range h {
		names[i] = c.Name()
	}

	return names
}

// Codes returns the compact codes of the cards
func (h Hand) Codes() []string {
	codes := make([]string, len(h))
	for i, c := range h {
		codes[i] = c.String()
	}

	return codes
}

func (h Hand) String() string {
	return CardsToString(h)
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}
