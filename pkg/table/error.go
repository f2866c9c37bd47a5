package table

import (
	"errors"
	"fmt"
)

// ErrTableFull happens when a seventh connection tries to sit down
var ErrTableFull = errors.New("the table is full")

// ErrSeatVacant happens when an action targets a seat nobody is sitting in
var ErrSeatVacant = errors.New("the seat is vacant")

// UserError is an error that is safe to return in a response
type UserError string

func (u UserError) Error() string {
	return string(u)
}

// InvalidSeatError is an error for a seat index outside of the table
type InvalidSeatError int

func (i InvalidSeatError) Error() string {
	return fmt.Sprintf("expected seat 0-%d, got %d", Seats-1, int(i))
}
