package deck

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownBook is returned when a book name is not recognized
var ErrUnknownBook = errors.New("unknown book")

// Book is one of the nine six-card groups a team can claim
type Book int

// books
const (
	LowHearts Book = iota
	LowSpades
	LowDiamonds
	LowClubs
	HighHearts
	HighSpades
	HighDiamonds
	HighClubs
	Extra
)

// BookCount is the number of books in the deck
const BookCount = 9

// CardsPerBook is the number of cards in each book
const CardsPerBook = 6

var bookNames = [BookCount]string{
	"Low Hearts",
	"Low Spades",
	"Low Diamonds",
	"Low Clubs",
	"High Hearts",
	"High Spades",
	"High Diamonds",
	"High Clubs",
	"Extra",
}

// books holds the cards of each book
// built once from the rank/suit rules and never mutated
var books = buildBooks()

func buildBooks() [BookCount][]Card {
	var b [BookCount][]Card
	for i, suit := range Suits {
		for rank := Ace; rank <= King; rank++ {
			card := Card{Rank: rank, Suit: suit}
			switch {
			case rank < 7:
				b[LowHearts+Book(i)] = append(b[LowHearts+Book(i)], card)
			case rank > 7:
				b[HighHearts+Book(i)] = append(b[HighHearts+Book(i)], card)
			}
		}
	}

	for _, suit := range []Suit{Diamonds, Hearts, Clubs, Spades} {
		b[Extra] = append(b[Extra], Card{Rank: 7, Suit: suit})
	}

	b[Extra] = append(b[Extra], Card{Rank: BWJoker}, Card{Rank: ColoredJoker})
	return b
}

// String returns the display name of the book
func (b Book) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Book(%d)", int(b))
	}

	return bookNames[b]
}

// Valid returns true if the book is one of the nine books
func (b Book) Valid() bool {
	return b >= LowHearts && b <= Extra
}

// Cards returns the six cards in the book
func (b Book) Cards() []Card {
	return append([]Card{}, books[b]...)
}

// Books returns all nine books in order
func Books() []Book {
	all := make([]Book, BookCount)
	for i := range all {
		all[i] = Book(i)
	}

	return all
}

// BookFromName parses a display name such as "Low Hearts"
func BookFromName(name string) (Book, error) {
	name = strings.TrimSpace(name)
	for i, n := range bookNames {
		if strings.EqualFold(n, name) {
			return Book(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %s", ErrUnknownBook, name)
}

// BookNames converts books to their display names
func BookNames(b []Book) []string {
	names := make([]string, len(b))
	for i, book := range b {
		names[i] = book.String()
	}

	return names
}

// BookOf returns the book the card belongs to
// The card must be one of the 54 cards in the deck. Anything else is a
// programming error and panics; parse input with CardFromString or NewCard first.
func BookOf(c Card) Book {
	if c.Rank.IsJoker() && c.Suit == NoSuit {
		return Extra
	}

	if c.Suit < Hearts || c.Suit > Clubs || c.Rank < Ace || c.Rank > King {
		panic(fmt.Sprintf("card is not in the deck: %d/%d", c.Rank, c.Suit))
	}

	if c.Rank == 7 {
		return Extra
	}

	offset := Book(c.Suit - Hearts)
	if c.Rank < 7 {
		return LowHearts + offset
	}

	return HighHearts + offset
}
