package child

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/ovchr/BSM-SessionService/internal/domain"
	"github.com/ovchr/BSM-SessionService/pkg/dbmetrics"
	"github.com/ovchr/BSM-SessionService/pkg/psqlbuilder"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var childColumns = []string{
	"id",
	"parent_id",
	"name",
	"gender",
	"date_of_birth",
	"photo_url",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с детскими записями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория детских записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую детскую запись
func (r *Repository) Create(ctx context.Context, child *domain.Child) (*domain.Child, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("children").
		Columns(
			"parent_id",
			"name",
			"gender",
			"date_of_birth",
			"photo_url",
			"notes",
		).
		Values(
			child.ParentID,
			child.Name,
			child.Gender,
			child.DateOfBirth,
			child.PhotoURL,
			child.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&child.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	child.CreatedAt = createdAt.Time
	child.UpdatedAt = updatedAt.Time

	return child, nil
}

// GetByID получает детскую запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Child, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(childColumns...).
		From("children").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	child, err := scanChild(executor.QueryRowContext(ctx, query, args...).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrChildNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan child: %v", ErrScanRow, err)
	}

	return child, nil
}

// GetByParent получает все детские записи родителя
func (r *Repository) GetByParent(ctx context.Context, parentID int64) ([]*domain.Child, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(childColumns...).
		From("children").
		Where(squirrel.Eq{"parent_id": parentID}).
		OrderBy("created_at ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByParent - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByParent - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	children := make([]*domain.Child, 0)
	for rows.Next() {
		child, err := scanChild(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByParent - scan child: %v", ErrScanRow, err)
		}
		children = append(children, child)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByParent - rows iteration: %v", ErrScanRow, err)
	}

	return children, nil
}

// Update обновляет детскую запись
func (r *Repository) Update(ctx context.Context, child *domain.Child) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("children").
		Set("name", child.Name).
		Set("gender", child.Gender).
		Set("date_of_birth", child.DateOfBirth).
		Set("photo_url", child.PhotoURL).
		Set("notes", child.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": child.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrChildNotFound
	}

	return nil
}

// Delete удаляет детскую запись
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("children").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrChildNotFound
	}

	return nil
}

// scanChild сканирует одну строку в доменную модель
func scanChild(scan func(dest ...interface{}) error) (*domain.Child, error) {
	var (
		child     domain.Child
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err := scan(
		&child.ID,
		&child.ParentID,
		&child.Name,
		&child.Gender,
		&child.DateOfBirth,
		&child.PhotoURL,
		&child.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	child.CreatedAt = createdAt.Time
	child.UpdatedAt = updatedAt.Time

	return &child, nil
}
