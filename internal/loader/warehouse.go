package loader

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/chrisconley/segmint/specs"

	_ "github.com/go-sql-driver/mysql"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// OpenWarehouse connects to a MySQL or MariaDB transaction warehouse.
// Accepts mariadb:// and mysql:// URLs as well as native driver DSNs.
// parseTime=true is added when absent; LoadWarehouse scans the date column
// into time.Time and needs it.
func OpenWarehouse(dsn string) (*sql.DB, error) {
	mysqlDSN, err := toMySQLDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", mysqlDSN)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

func toMySQLDSN(dsn string) (string, error) {
	if strings.HasPrefix(dsn, "mariadb://") || strings.HasPrefix(dsn, "mysql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("parse dsn: %w", err)
		}
		user := ""
		pass := ""
		if u.User != nil {
			user = u.User.Username()
			pw, _ := u.User.Password()
			pass = pw
		}
		host := u.Host
		db := strings.TrimPrefix(u.Path, "/")
		if user == "" || host == "" || db == "" {
			return "", fmt.Errorf("incomplete dsn (user/host/db)")
		}
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&interpolateParams=true",
			user, pass, host, db), nil
	}

	// Native driver DSNs pass through, but date scanning requires parseTime.
	// An explicit parseTime setting is respected.
	if strings.Contains(dsn, "parseTime=") {
		return dsn, nil
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "parseTime=true", nil
}

// LoadWarehouse reads a transaction history from a warehouse table using the
// given column mapping. NULL quantities default to one unit; NULL prices and
// products stay empty and fall to the pipeline's defaults.
func LoadWarehouse(ctx context.Context, db *sql.DB, tableName string, columns Columns) ([]specs.TransactionSpec, error) {
	if !tableNamePattern.MatchString(tableName) {
		return nil, fmt.Errorf("invalid table name %q", tableName)
	}
	columns = columns.withDefaults()
	for _, column := range []string{columns.Date, columns.CustomerID, columns.Quantity, columns.Price, columns.Product} {
		if !tableNamePattern.MatchString(column) {
			return nil, fmt.Errorf("invalid column name %q", column)
		}
	}

	q := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		ORDER BY %s
	`, columns.Date, columns.CustomerID, columns.Quantity, columns.Price, columns.Product,
		tableName, columns.Date)

	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", tableName, err)
	}
	defer rows.Close()

	var transactions []specs.TransactionSpec
	for rows.Next() {
		var (
			date       time.Time
			customerID sql.NullString
			quantity   sql.NullString
			price      sql.NullString
			product    sql.NullString
		)
		if err := rows.Scan(&date, &customerID, &quantity, &price, &product); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", tableName, err)
		}

		tx := specs.TransactionSpec{
			Date:       date,
			CustomerID: customerID.String,
			Quantity:   quantity.String,
			Price:      price.String,
			Product:    product.String,
		}
		if !quantity.Valid {
			tx.Quantity = "1"
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}
