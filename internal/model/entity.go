package model

import "time"

// Row is one decoded result row, keyed by column name.
type Row = map[string]any

// User is a shop customer.
type User struct {
	UserID int    `json:"userid" db:"userid"`
	Name   string `json:"name" db:"name"`
	Email  string `json:"email" db:"email"`
}

// Product is a catalogue item with its current stock level.
type Product struct {
	ProductID int     `json:"productid" db:"productid"`
	Name      string  `json:"name" db:"name"`
	Category  string  `json:"category" db:"category"`
	Price     float64 `json:"price" db:"price"`
	Stock     int     `json:"stock" db:"stock"`
}

// Transaction is a purchase made by a user on a given day.
type Transaction struct {
	TransactionID int       `json:"transactionid" db:"transactionid"`
	UserID        int       `json:"userid" db:"userid"`
	Date          time.Time `json:"date" db:"date"`
}

// TransactionDetail is one product line of a transaction.
type TransactionDetail struct {
	TransactionID int `json:"transactionid" db:"transactionid"`
	ProductID     int `json:"productid" db:"productid"`
	Quantity      int `json:"quantity" db:"quantity"`
}
