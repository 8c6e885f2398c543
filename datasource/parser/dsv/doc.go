// Package dsv loads delimiter-separated data (CSV, TSV, ...) into Tables.
package dsv
