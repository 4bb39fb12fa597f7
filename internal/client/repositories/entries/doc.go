// Package entries stores meal ledger entries in the local SQLite database.
//
// Each row keeps the food by value (the catalog may change between releases)
// and a seq column that preserves ledger order. SQLiteRepository works over
// dbx.DBTX, so the same code runs on *sql.DB or inside a *sql.Tx.
package entries
