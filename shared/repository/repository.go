package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"parking/infras/otel"
	"parking/infras/postgres"
	"parking/shared/constant"
	"parking/shared/dto"
	"parking/shared/logger"
	"reflect"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
)

var errRequiredFilter = errors.New("required filter")

type column struct {
	name  string
	table string
	alias string
}

// expr is the qualified select expression, e.g. "parking_spots.number AS spot_number".
func (c column) expr() string {
	if c.table == "" {
		return c.name
	}

	if c.alias != "" {
		return c.table + "." + c.name + " AS " + c.alias
	}

	return c.table + "." + c.name
}

// key is the name a caller uses for the column in a select list or sort.
func (c column) key() string {
	if c.alias != "" {
		return c.alias
	}

	return c.name
}

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
}

type preparer interface {
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

type joiner interface {
	GetJoinQuery() string
}

// Repository is a generic sqlx table gateway for T. Columns come from the db tags of T;
// fields tagged table:"other" column:"name" are read through T's GetJoinQuery.
// Reads go to the read connection, writes to the write connection, *Tx variants to the transaction.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entitas       string
	primaryColumn string
	columns       []column
	join          string
	insertQuery   string
}

func NewRepository[T any](entitasName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns, insertColumns := getColumns(tableName, reflect.TypeOf(zero))

	var join string
	if j, ok := any(zero).(joiner); ok {
		join = j.GetJoinQuery()
	}

	placeholders := make([]string, len(insertColumns))
	for i, col := range insertColumns {
		placeholders[i] = ":" + col
	}

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entitas:       entitasName,
		primaryColumn: primaryColumn,
		columns:       columns,
		join:          join,
		insertQuery: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			tableName, strings.Join(insertColumns, ", "), strings.Join(placeholders, ", ")),
	}
}

func (repo *Repository[T]) scope(ctx context.Context, op string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName,
		constant.OtelRepositoryScopeName+"."+repo.entitas+"."+op)
}

func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entitas, err)
}

func (repo *Repository[T]) exec(ctx context.Context, op string, ex execer, query string, arg any) error {
	ctx, scope := repo.scope(ctx, op)
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := ex.NamedExecContext(ctx, query, arg); err != nil {
		return repo.fail(scope, op, err)
	}

	return nil
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.exec(ctx, "insert", repo.db.Write, repo.insertQuery, model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	return repo.exec(ctx, "insert", sqltx, repo.insertQuery, model)
}

// InsertBulkTx inserts all models with one multi-row statement.
func (repo *Repository[T]) InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []T) error {
	if len(models) == 0 {
		return nil
	}

	return repo.exec(ctx, "bulk insert", sqltx, repo.insertQuery, models)
}

func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, repo.db.Write, mod, filter)
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, sqltx, mod, filter)
}

func (repo *Repository[T]) update(ctx context.Context, ex execer, mod map[string]any, filter dto.FilterGroup) error {
	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return errRequiredFilter
	}

	fields := slices.Sorted(maps.Keys(mod))
	sets := make([]string, len(fields))

	for i, field := range fields {
		sets[i] = field + " = :" + field
	}

	maps.Copy(args, mod)

	query := fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(sets, ", "), where)

	return repo.exec(ctx, "update", ex, query, args)
}

func (repo *Repository[T]) DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) error {
	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return errRequiredFilter
	}

	return repo.exec(ctx, "delete", sqltx, fmt.Sprintf("DELETE FROM %s %s", repo.table, where), args)
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.scope(ctx, "Exist")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return false, errRequiredFilter
	}

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var exist bool
	if err := repo.scan(ctx, repo.db.Read, query, args, &exist, false); err != nil {
		return false, repo.fail(scope, "check exist data", err)
	}

	return exist, nil
}

// Get returns the zero T when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, repo.db.Read, filter, false, columns...)
}

func (repo *Repository[T]) GetTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, sqltx, filter, false, columns...)
}

// GetForUpdateTx row-locks the matched row until the transaction ends.
func (repo *Repository[T]) GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, sqltx, filter, true, columns...)
}

func (repo *Repository[T]) get(ctx context.Context, prep preparer, filter dto.FilterGroup, lock bool, columns ...string) (model T, err error) {
	ctx, scope := repo.scope(ctx, "Get")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)

	query := fmt.Sprintf("SELECT %s FROM %s %s %s", repo.selectList(columns), repo.table, repo.join, where)
	if lock {
		if where == "" {
			return model, errRequiredFilter
		}

		query += " FOR UPDATE OF " + repo.table
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = repo.scan(ctx, prep, query, args, &model, false); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model, nil
		}

		return model, repo.fail(scope, "get data", err)
	}

	return model, nil
}

// GetAll pages with LIMIT/OFFSET when params carry them. SortBy must name a column of T.
func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.scope(ctx, "GetAll")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)

	query := fmt.Sprintf("SELECT %s FROM %s %s %s", repo.selectList(columns), repo.table, repo.join, where)

	if order := repo.orderBy(params); order != "" {
		query += " " + order
	}

	if params.Limit > 0 {
		args["limit"] = params.Limit
		query += " LIMIT :limit"

		if params.Page > 0 {
			args["offset"] = (params.Page - 1) * params.Limit
			query += " OFFSET :offset"
		}
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var models []T
	if err := repo.scan(ctx, repo.db.Read, query, args, &models, true); err != nil {
		return nil, repo.fail(scope, "get all data", err)
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	return repo.count(ctx, repo.db.Read, filter)
}

func (repo *Repository[T]) CountTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) (int, error) {
	return repo.count(ctx, sqltx, filter)
}

func (repo *Repository[T]) count(ctx context.Context, prep preparer, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.scope(ctx, "Count")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)

	query := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s %s %s", repo.table, repo.primaryColumn, repo.table, repo.join, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int
	if err := repo.scan(ctx, prep, query, args, &count, false); err != nil {
		return 0, repo.fail(scope, "count data", err)
	}

	return count, nil
}

func (repo *Repository[T]) scan(ctx context.Context, prep preparer, query string, args map[string]any, dest any, many bool) error {
	stmt, err := prep.PrepareNamedContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	if many {
		return stmt.SelectContext(ctx, dest, args) //nolint:wrapcheck
	}

	return stmt.GetContext(ctx, dest, args) //nolint:wrapcheck
}

// BuildWhereClause renders filter as " WHERE ..." or an empty string with empty args.
func (repo *Repository[T]) BuildWhereClause(ctx context.Context, filter dto.FilterGroup) (string, map[string]any) {
	_, scope := repo.scope(ctx, "BuildWhereClause")
	defer scope.End()

	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return " WHERE " + where + " ", args
}

func (repo *Repository[T]) selectList(only []string) string {
	exprs := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col.name) {
			continue
		}

		exprs = append(exprs, col.expr())
	}

	return strings.Join(exprs, ", ")
}

// orderBy accepts a column by its key or in table.column form. Anything else is dropped.
func (repo *Repository[T]) orderBy(params dto.QueryParams) string {
	if params.SortBy == "" {
		return ""
	}

	idx := slices.IndexFunc(repo.columns, func(c column) bool {
		return c.key() == params.SortBy || (c.table != "" && c.table+"."+c.name == params.SortBy)
	})
	if idx == -1 {
		return ""
	}

	dir := dto.SortDirAsc
	if params.SortDir == dto.SortDirDesc {
		dir = dto.SortDirDesc
	}

	col := repo.columns[idx]
	if col.table == "" {
		return "ORDER BY " + col.name + " " + dir
	}

	return "ORDER BY " + col.table + "." + col.name + " " + dir
}

func getColumns(table string, reflectType reflect.Type) (columns []column, insertColumns []string) {
	for i := range reflectType.NumField() {
		field := reflectType.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			embedded, embeddedInsert := getColumns(table, field.Type)
			columns = append(columns, embedded...)
			insertColumns = append(insertColumns, embeddedInsert...)

			continue
		}

		dbTag := field.Tag.Get("db")
		if dbTag == "" || dbTag == "-" {
			continue
		}

		owner := field.Tag.Get("table")
		if owner == "" {
			owner = table
		}

		if owner == table {
			insertColumns = append(insertColumns, dbTag)
		}

		if name := field.Tag.Get("column"); name != "" {
			columns = append(columns, column{name: name, table: owner, alias: dbTag})
		} else {
			columns = append(columns, column{name: dbTag, table: owner})
		}
	}

	return columns, insertColumns
}
