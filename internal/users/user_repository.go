package users

import (
	"fmt"

	"restaurant/internal/repository"
	"restaurant/pkg/apperrors"
	"restaurant/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type UserRepository interface {
	PersistUser(req models.CreateUserRequest, hashedPassword []byte) error
	GetUser(id int) (*models.User, error)
	GetUsers() ([]models.User, error)
	UpdateUser(id int, changes *models.UserChanges) error
	SetSuspended(id int, suspended bool) error
}

type userRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) UserRepository {
	return &userRepositoryImpl{repository: r}
}

func (r *userRepositoryImpl) PersistUser(req models.CreateUserRequest, hashedPassword []byte) error {
	query := r.repository.GoquDBWrapper.Insert("users").
		Rows(goqu.Record{
			"password_hash": string(hashedPassword),
			"username":      req.Username,
			"fullname":      req.Fullname,
			"role":          req.Role,
		})

	_, err := query.Executor().Exec()
	if err != nil {
		if apperrors.IsUniqueViolation(err) {
			return apperrors.Conflict(fmt.Sprintf("username %q is taken", req.Username))
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (r *userRepositoryImpl) GetUsers() ([]models.User, error) {
	var users []models.User
	query := r.repository.GoquDBWrapper.
		Select("id", "username", "fullname", "role", "suspended").
		From("users").
		Order(goqu.I("id").Asc())

	if err := query.Executor().ScanStructs(&users); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return users, nil
}

func (r *userRepositoryImpl) GetUser(id int) (*models.User, error) {
	var user models.User
	query := r.repository.GoquDBWrapper.
		Select("id", "username", "fullname", "password_hash", "role", "suspended").
		From("users").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !found {
		return nil, apperrors.NotFound("user", id)
	}

	return &user, nil
}

func (r *userRepositoryImpl) UpdateUser(id int, changes *models.UserChanges) error {
	record := goqu.Record{}
	if changes.PasswordHash != nil {
		record["password_hash"] = *changes.PasswordHash
	}
	if changes.Fullname != nil {
		record["fullname"] = *changes.Fullname
	}
	if changes.Role != nil {
		record["role"] = *changes.Role
	}

	query := r.repository.GoquDBWrapper.Update("users").
		Set(record).
		Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// SetSuspended toggles the soft-delete flag. Suspending an admin is
// refused when it would leave the system without any active admin; the
// count and the toggle run in one transaction so concurrent suspensions
// cannot race past the check.
func (r *userRepositoryImpl) SetSuspended(id int, suspended bool) error {
	return repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		if suspended {
			var adminIDs []int
			query := tx.Select("id").
				From("users").
				Where(
					goqu.C("role").Eq("admin"),
					goqu.C("suspended").IsFalse(),
					goqu.C("id").Neq(id),
				).
				ForUpdate(goqu.Wait)

			if err := query.Executor().ScanVals(&adminIDs); err != nil {
				return fmt.Errorf("failed to count active admins: %w", err)
			}
			remaining := len(adminIDs)

			var target models.User
			found, err := tx.Select("id", "role").From("users").Where(goqu.Ex{"id": id}).Executor().ScanStruct(&target)
			if err != nil {
				return fmt.Errorf("failed to get user: %w", err)
			}
			if !found {
				return apperrors.NotFound("user", id)
			}

			if target.Role == "admin" && remaining == 0 {
				return apperrors.Conflict("cannot suspend the last active admin")
			}
		}

		result, err := tx.Update("users").
			Set(goqu.Record{"suspended": suspended}).
			Where(goqu.Ex{"id": id}).
			Executor().Exec()
		if err != nil {
			return fmt.Errorf("failed to update suspension flag: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if affected == 0 {
			return apperrors.NotFound("user", id)
		}

		return nil
	})
}
