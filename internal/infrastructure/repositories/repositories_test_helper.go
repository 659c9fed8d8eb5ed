package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		role TEXT NOT NULL,
		contact_number TEXT,
		margin TEXT NOT NULL DEFAULT '0',
		is_password_updated BOOLEAN DEFAULT 0,
		active BOOLEAN DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE user_otps (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		otp TEXT NOT NULL,
		expires_at DATETIME NOT NULL,
		created_at DATETIME
	);`)
}

func createWalletTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE wallets (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		currency TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE wallet_recharge (
		id TEXT PRIMARY KEY,
		wallet_id TEXT NOT NULL,
		transaction_type TEXT NOT NULL,
		amount TEXT NOT NULL,
		description TEXT,
		transaction_id TEXT UNIQUE NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createCustomerTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE customers (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT,
		email TEXT,
		mobile_number TEXT NOT NULL,
		shipping_address_line1 TEXT NOT NULL,
		shipping_address_line2 TEXT,
		shipping_city TEXT,
		shipping_state TEXT,
		shipping_pincode TEXT,
		shipping_same_as_billing BOOLEAN DEFAULT 1,
		billing_address_line1 TEXT,
		billing_address_line2 TEXT,
		billing_city TEXT,
		billing_state TEXT,
		billing_pincode TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createOrderTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE orders (
		id TEXT PRIMARY KEY,
		order_unique_id TEXT UNIQUE NOT NULL,
		customer_id TEXT NOT NULL,
		warehouse_id TEXT NOT NULL,
		client_id TEXT NOT NULL,
		payment_mode TEXT NOT NULL,
		packages_count INTEGER NOT NULL,
		total_cod_amount TEXT NOT NULL DEFAULT '0',
		upload_wbn TEXT,
		order_date DATETIME NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE shipments (
		id TEXT PRIMARY KEY,
		order_id TEXT NOT NULL,
		tracking_number TEXT UNIQUE NOT NULL,
		waybill TEXT NOT NULL,
		shipment_status TEXT NOT NULL,
		weight TEXT NOT NULL DEFAULT '0',
		cod_amount TEXT NOT NULL DEFAULT '0',
		product_details TEXT,
		is_label_downloaded BOOLEAN DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE order_intents (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		warehouse_id TEXT NOT NULL,
		order_unique_id TEXT NOT NULL,
		amount TEXT NOT NULL,
		status TEXT NOT NULL,
		upload_wbn TEXT,
		waybill TEXT,
		failure_reason TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createWarehouseTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE warehouses (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		facility_name TEXT NOT NULL,
		contact_person TEXT NOT NULL,
		phone TEXT NOT NULL,
		pickup_location TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT,
		pincode TEXT NOT NULL,
		country TEXT NOT NULL DEFAULT 'India',
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createCatalogTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE categories (
		id TEXT PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE products (
		id TEXT PRIMARY KEY,
		item_name TEXT NOT NULL,
		sku_code TEXT,
		price TEXT NOT NULL DEFAULT '0',
		category_id TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}
