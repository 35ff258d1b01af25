package sqlbuilder

import (
	"fmt"

	"github.com/Masterminds/squirrel"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// New возвращает squirrel builder с плейсхолдерами нужного диалекта
func New(driver string) (squirrel.StatementBuilderType, error) {
	switch driver {
	case DriverSQLite:
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question), nil
	case DriverPostgres:
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar), nil
	default:
		return squirrel.StatementBuilder, fmt.Errorf("sqlbuilder: unsupported driver %q", driver)
	}
}
