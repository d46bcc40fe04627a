package database

import (
	"database/sql/driver"
	"strings"

	sqlite "github.com/glebarez/go-sqlite"
	"gorm.io/gorm"
)

// foldFunc lowercases with Go's Unicode rules. SQLite's own LOWER only folds
// ASCII, so name matching on SQLite goes through this instead.
const foldFunc = "fyyur_fold"

func init() {
	err := sqlite.RegisterDeterministicScalarFunction(foldFunc, 1, func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		switch v := args[0].(type) {
		case string:
			return strings.ToLower(v), nil
		case []byte:
			return strings.ToLower(string(v)), nil
		default:
			return v, nil
		}
	})
	if err != nil {
		panic(err)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern lowercases term and escapes LIKE wildcards so it is matched literally.
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

// NameContains filters on a case-insensitive substring of the name column,
// folding case the same way on the column and on term.
func NameContains(term string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		pattern := ContainsPattern(term)
		if db.Dialector.Name() == "postgres" {
			return db.Where(`name ILIKE ? ESCAPE '\'`, pattern)
		}
		return db.Where(foldFunc+`(name) LIKE ? ESCAPE '\'`, pattern)
	}
}
