// Package sampledata creates the reporting schema and loads datasets into it.
// The service itself never writes; this package backs the seed script and the
// database tests.
package sampledata

import (
	"context"
	"fmt"
	"time"

	"storefront-analytics/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// Schema is the table layout the analytics queries read from.
const Schema = `
	CREATE TABLE IF NOT EXISTS Users (
		userid SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS Products (
		productid SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		price NUMERIC(10, 2) NOT NULL CHECK (price >= 0),
		stock INTEGER NOT NULL CHECK (stock >= 0)
	);

	CREATE TABLE IF NOT EXISTS Transactions (
		transactionid SERIAL PRIMARY KEY,
		userid INTEGER NOT NULL REFERENCES Users(userid),
		date DATE NOT NULL
	);

	CREATE TABLE IF NOT EXISTS TransactionDetails (
		transactionid INTEGER NOT NULL REFERENCES Transactions(transactionid),
		productid INTEGER NOT NULL REFERENCES Products(productid),
		quantity INTEGER NOT NULL CHECK (quantity > 0)
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_date ON Transactions(date);
	CREATE INDEX IF NOT EXISTS idx_transaction_details_productid ON TransactionDetails(productid);
`

// Execer runs a statement that returns no rows.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Dataset is a full set of rows for the four tables. IDs are explicit so
// details can reference transactions and products.
type Dataset struct {
	Users        []model.User
	Products     []model.Product
	Transactions []model.Transaction
	Details      []model.TransactionDetail
}

// CreateSchema creates the tables if they do not exist.
func CreateSchema(ctx context.Context, db Execer) error {
	if _, err := db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Truncate removes every row and resets the id sequences.
func Truncate(ctx context.Context, db Execer) error {
	_, err := db.Exec(ctx, `TRUNCATE TransactionDetails, Transactions, Products, Users RESTART IDENTITY CASCADE`)
	if err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	return nil
}

// Load inserts ds parents first, then moves the id sequences past the
// inserted ids.
func Load(ctx context.Context, db Execer, ds Dataset) error {
	for _, u := range ds.Users {
		if _, err := db.Exec(ctx,
			`INSERT INTO Users (userid, name, email) VALUES ($1, $2, $3)`,
			u.UserID, u.Name, u.Email,
		); err != nil {
			return fmt.Errorf("failed to insert user %d: %w", u.UserID, err)
		}
	}

	for _, p := range ds.Products {
		if _, err := db.Exec(ctx,
			`INSERT INTO Products (productid, name, category, price, stock) VALUES ($1, $2, $3, $4, $5)`,
			p.ProductID, p.Name, p.Category, p.Price, p.Stock,
		); err != nil {
			return fmt.Errorf("failed to insert product %d: %w", p.ProductID, err)
		}
	}

	for _, tx := range ds.Transactions {
		if _, err := db.Exec(ctx,
			`INSERT INTO Transactions (transactionid, userid, date) VALUES ($1, $2, $3)`,
			tx.TransactionID, tx.UserID, tx.Date,
		); err != nil {
			return fmt.Errorf("failed to insert transaction %d: %w", tx.TransactionID, err)
		}
	}

	for _, d := range ds.Details {
		if _, err := db.Exec(ctx,
			`INSERT INTO TransactionDetails (transactionid, productid, quantity) VALUES ($1, $2, $3)`,
			d.TransactionID, d.ProductID, d.Quantity,
		); err != nil {
			return fmt.Errorf("failed to insert detail (%d, %d): %w", d.TransactionID, d.ProductID, err)
		}
	}

	_, err := db.Exec(ctx, `
		SELECT setval(pg_get_serial_sequence('users', 'userid'), COALESCE((SELECT MAX(userid) FROM Users), 0) + 1, false);
		SELECT setval(pg_get_serial_sequence('products', 'productid'), COALESCE((SELECT MAX(productid) FROM Products), 0) + 1, false);
		SELECT setval(pg_get_serial_sequence('transactions', 'transactionid'), COALESCE((SELECT MAX(transactionid) FROM Transactions), 0) + 1, false);
	`)
	if err != nil {
		return fmt.Errorf("failed to reset sequences: %w", err)
	}

	return nil
}

// Demo returns a small dataset whose transactions are spread over the 60
// days before today.
func Demo(today time.Time) Dataset {
	day := func(ago int) time.Time {
		return time.Date(today.Year(), today.Month(), today.Day()-ago, 0, 0, 0, 0, time.UTC)
	}

	return Dataset{
		Users: []model.User{
			{UserID: 1, Name: "Alice Martin", Email: "alice@example.com"},
			{UserID: 2, Name: "Bob Chen", Email: "bob@example.com"},
			{UserID: 3, Name: "Carla Souza", Email: "carla@example.com"},
			{UserID: 4, Name: "Dev Patel", Email: "dev@example.com"},
		},
		Products: []model.Product{
			{ProductID: 1, Name: "Go in Practice", Category: "Books", Price: 39.99, Stock: 120},
			{ProductID: 2, Name: "SQL Cookbook", Category: "Books", Price: 29.50, Stock: 80},
			{ProductID: 3, Name: "Mechanical Keyboard", Category: "Electronics", Price: 89.00, Stock: 40},
			{ProductID: 4, Name: "USB-C Hub", Category: "Electronics", Price: 24.99, Stock: 150},
			{ProductID: 5, Name: "Desk Lamp", Category: "Home", Price: 19.95, Stock: 60},
		},
		Transactions: []model.Transaction{
			{TransactionID: 1, UserID: 1, Date: day(2)},
			{TransactionID: 2, UserID: 1, Date: day(12)},
			{TransactionID: 3, UserID: 2, Date: day(29)},
			{TransactionID: 4, UserID: 3, Date: day(30)},
			{TransactionID: 5, UserID: 3, Date: day(45)},
			{TransactionID: 6, UserID: 4, Date: day(60)},
		},
		Details: []model.TransactionDetail{
			{TransactionID: 1, ProductID: 1, Quantity: 1},
			{TransactionID: 1, ProductID: 4, Quantity: 2},
			{TransactionID: 2, ProductID: 1, Quantity: 3},
			{TransactionID: 3, ProductID: 2, Quantity: 1},
			{TransactionID: 3, ProductID: 1, Quantity: 1},
			{TransactionID: 4, ProductID: 3, Quantity: 1},
			{TransactionID: 5, ProductID: 4, Quantity: 5},
			{TransactionID: 6, ProductID: 2, Quantity: 2},
		},
	}
}
