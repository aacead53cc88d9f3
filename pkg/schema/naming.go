package schema

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

// identifierHashLength is the number of hex characters kept from the digest
// in generated constraint names.
const identifierHashLength = 10

// ForeignKeyName derives a stable constraint name for an unnamed foreign key:
// fk_rails_<first 10 hex chars of sha256("<table>_<column>_fk")>.
func ForeignKeyName(table string, columns []string) string {
	return "fk_rails_" + hashIdentifier(table+"_"+strings.Join(columns, "_")+"_fk")
}

// CheckConstraintName derives a stable name for an unnamed check constraint:
// chk_rails_<first 10 hex chars of sha256("<table>_<expression>_chk")>.
func CheckConstraintName(table, expression string) string {
	return "chk_rails_" + hashIdentifier(table+"_"+expression+"_chk")
}

// ExclusionConstraintName derives a stable name for an unnamed exclusion
// constraint: excl_rails_<first 10 hex chars of sha256("<table>_<expression>_excl")>.
func ExclusionConstraintName(table, expression string) string {
	return "excl_rails_" + hashIdentifier(table+"_"+expression+"_excl")
}

// IndexName derives the conventional index name index_<table>_on_<a>_and_<b>.
func IndexName(table string, columns []string) string {
	return "index_" + table + "_on_" + strings.Join(columns, "_and_")
}

// ExpressionIndexName derives the index name for an expression index:
// index_<table>_on_<expression>, with every run of characters other than
// letters, digits and underscores folded into one underscore.
// "lower(email)" becomes index_users_on_lower_email.
func ExpressionIndexName(table, expression string) string {
	return "index_" + table + "_on_" + strings.Trim(nonWordRun.ReplaceAllString(expression, "_"), "_")
}

var nonWordRun = regexp.MustCompile(`\W+`)

func hashIdentifier(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])[:identifierHashLength]
}
