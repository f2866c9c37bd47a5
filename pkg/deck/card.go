package deck

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRank is returned when a rank name or code is not recognized
var ErrUnknownRank = errors.New("unknown rank")

// ErrUnknownSuit is returned when a suit name or code is not recognized
var ErrUnknownSuit = errors.New("unknown suit")

// Suit represents a card suit
type Suit int

// suit constants
// NoSuit is only valid for the jokers
const (
	NoSuit Suit = iota
	Hearts
	Spades
	Diamonds
	Clubs
)

// Suits are the four standard suits in book order
var Suits = []Suit{Hearts, Spades, Diamonds, Clubs}

var suitNames = map[Suit]string{
	Hearts:   "Hearts",
	Spades:   "Spades",
	Diamonds: "Diamonds",
	Clubs:    "Clubs",
}

var suitCodes = map[Suit]byte{
	NoSuit:   'J',
	Hearts:   'H',
	Spades:   'S',
	Diamonds: 'D',
	Clubs:    'C',
}

// String returns the display name of the suit
func (s Suit) String() string {
	if name, ok := suitNames[s]; ok {
		return name
	}

	return ""
}

// SuitFromName parses a display name such as "Hearts"
// An empty name is NoSuit, which is what a client sends when asking for a joker.
func SuitFromName(name string) (Suit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return NoSuit, nil
	}

	for suit, n := range suitNames {
		if strings.EqualFold(n, name) {
			return suit, nil
		}
	}

	return NoSuit, fmt.Errorf("%w: %s", ErrUnknownSuit, name)
}

// Rank represents a card rank
type Rank int

// ranks
const (
	Ace   Rank = 1
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13

	BWJoker      Rank = 14
	ColoredJoker Rank = 15
)

// IsJoker returns true for both joker ranks
func (r Rank) IsJoker() bool {
	return r == BWJoker || r == ColoredJoker
}

// String returns the display name of the rank
func (r Rank) String() string {
	switch r {
	case Ace:
		return "Ace"
	case Jack:
		return "Jack"
	case Queen:
		return "Queen"
	case King:
		return "King"
	case BWJoker:
		return "BW Joker"
	case ColoredJoker:
		return "Colored Joker"
	}

	if r > Ace && r <= Ten {
		return fmt.Sprintf("%d", int(r))
	}

	return ""
}

func (r Rank) code() byte {
	switch r {
	case Ace:
		return 'A'
	case Ten:
		return 'T'
	case Jack:
		return 'J'
	case Queen:
		return 'Q'
	case King:
		return 'K'
	case BWJoker:
		return '1'
	case ColoredJoker:
		return '2'
	}

	return byte('0' + int(r))
}

func (r Rank) valid() bool {
	return r >= Ace && r <= ColoredJoker
}

// RankFromName parses a display name such as "Ace", "10" or "BW Joker"
func RankFromName(name string) (Rank, error) {
	name = strings.TrimSpace(name)
	for r := Ace; r <= ColoredJoker; r++ {
		if strings.EqualFold(r.String(), name) {
			return r, nil
		}
	}

	return 0, fmt.Errorf("%w: %s", ErrUnknownRank, name)
}

// Card is an individual playing card
// Cards are values and are compared with ==. JSON uses the compact code.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard returns a card after checking it is part of the deck
func NewCard(rank Rank, suit Suit) (Card, error) {
	if !rank.valid() {
		return Card{}, ErrUnknownRank
	}

	if rank.IsJoker() != (suit == NoSuit) {
		return Card{}, fmt.Errorf("%w for %s", ErrUnknownSuit, rank)
	}

	if _, ok := suitCodes[suit]; !ok {
		return Card{}, ErrUnknownSuit
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// String returns the compact code of the card, such as AH, TD or 1J
func (c Card) String() string {
	return string([]byte{c.Rank.code(), suitCodes[c.Suit]})
}

// Name returns the human-readable name, such as "Ace of Hearts"
func (c Card) Name() string {
	if c.Rank.IsJoker() {
		return c.Rank.String()
	}

	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// Book returns the book the card belongs to
func (c Card) Book() Book {
	return BookOf(c)
}

// CardFromString parses a compact code such as "AH", "td" or "2J"
func CardFromString(s string) (Card, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 2 {
		return Card{}, fmt.Errorf("could not parse card: %q", s)
	}

	var suit Suit
	found := false
	for st, code := range suitCodes {
		if code == s[1] {
			suit = st
			found = true
			break
		}
	}

	if !found {
		return Card{}, fmt.Errorf("%w: %q", ErrUnknownSuit, s)
	}

	for r := Ace; r <= ColoredJoker; r++ {
		if r.code() != s[0] {
			continue
		}

		// "2" is both a rank and the colored joker, the suit decides
		if card, err := NewCard(r, suit); err == nil {
			return card, nil
		}
	}

	return Card{}, fmt.Errorf("%w: %q", ErrUnknownRank, s)
}

// MustCardFromString is like CardFromString, but panics on error
// Used for tables and tests
func MustCardFromString(s string) Card {
	card, err := CardFromString(s)
	if err != nil {
		panic(err)
	}

	return card
}

// CardsFromString parses a comma-separated list of codes
func CardsFromString(s string) []Card {
	if s == "" {
		return []Card{}
	}

	parts := strings.Split(s, ",")
	cards := make([]Card, len(parts))
	for i, part := range parts {
		cards[i] = MustCardFromString(part)
	}

	return cards
}

// CardsToString converts cards to a comma-separated list of codes
func CardsToString(cards []Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = card.String()
	}

	return strings.Join(c, ",")
}

// MarshalText encodes the card as its compact code
func (c Card) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a compact code
func (c *Card) UnmarshalText(b []byte) error {
	card, err := CardFromString(string(b))
	if err != nil {
		return err
	}

	*c = card
	return nil
}
