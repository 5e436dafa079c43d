package order

import "errors"

// Validation errors, in the sequence checkout evaluates them. Each one is
// user-visible and aborts submission before anything reaches the database.
var (
	ErrMixedRegions      = errors.New("cart contains items from more than one region; split the order")
	ErrBelowMinimum      = errors.New("a minimum of 10 items is required to place an order")
	ErrNoBranch          = errors.New("no fulfilling branch could be determined")
	ErrNoPaymentMethod   = errors.New("select a payment method")
	ErrNoRegion          = errors.New("select your region")
	ErrNoCustomerName    = errors.New("enter the customer name")
	ErrNoContactNumber   = errors.New("enter a contact number")
	ErrNoEmail           = errors.New("enter an email address")
	ErrInvalidCellNumber = errors.New("Enter a valid South African cellphone number")
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrPersistTimeout    = errors.New("order could not be saved in time; please try again")
	ErrInvalidStatus     = errors.New("unknown order status")
	ErrIllegalTransition = errors.New("order cannot move to that status")
)
