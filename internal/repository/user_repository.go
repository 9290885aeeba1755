package repository

import (
    "database/sql"
    "time"

    appErrors "github.com/clout-botaa/saas-mailer/internal/errors"
    "github.com/clout-botaa/saas-mailer/internal/model"
)

type UserRepositoryInterface interface {
    Create(u *model.User) error
    GetByID(id int) (*model.User, error)
    GetByEmail(email string) (*model.User, error)
    ListAll() ([]*model.User, error)

    // Quota bookkeeping; only the quota service should call these.
    UpdateUsage(id, usedToday int) error
    ResetUsage(id int, resetAt time.Time) error
}

type UserRepository struct {
    DB *sql.DB
}

const userColumns = `id, email, password, smtp_user, smtp_pass, smtp_host, smtp_port, daily_limit, used_today, last_reset, created_at`

func (r *UserRepository) Create(u *model.User) error {
    u.CreatedAt = time.Now()
    u.LastReset = u.CreatedAt
    query := `
        INSERT INTO users (email, password, smtp_user, smtp_pass, smtp_host, smtp_port, daily_limit, used_today, last_reset, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $9)
        RETURNING id
    `
    return r.DB.QueryRow(query,
        u.Email, u.Password, u.SMTPUser, u.SMTPPass, u.SMTPHost, u.SMTPPort,
        u.DailyLimit, u.LastReset, u.CreatedAt,
    ).Scan(&u.ID)
}

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
    var u model.User
    err := row.Scan(
        &u.ID, &u.Email, &u.Password, &u.SMTPUser, &u.SMTPPass,
        &u.SMTPHost, &u.SMTPPort, &u.DailyLimit, &u.UsedToday,
        &u.LastReset, &u.CreatedAt,
    )
    if err != nil {
        return nil, err
    }
    return &u, nil
}

func (r *UserRepository) GetByID(id int) (*model.User, error) {
    query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
    u, err := scanUser(r.DB.QueryRow(query, id))
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, appErrors.NewUserNotFound(id)
        }
        return nil, err
    }
    return u, nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
    query := `SELECT ` + userColumns + ` FROM users WHERE email=$1`
    u, err := scanUser(r.DB.QueryRow(query, email))
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil // not found
        }
        return nil, err
    }
    return u, nil
}

// ListAll returns every user in insertion order. The dispatch engine
// relies on this order being stable between runs.
func (r *UserRepository) ListAll() ([]*model.User, error) {
    query := `SELECT ` + userColumns + ` FROM users ORDER BY id`
    rows, err := r.DB.Query(query)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    users := []*model.User{}
    for rows.Next() {
        u, err := scanUser(rows)
        if err != nil {
            return nil, err
        }
        users = append(users, u)
    }
    return users, rows.Err()
}

func (r *UserRepository) UpdateUsage(id, usedToday int) error {
    query := `UPDATE users SET used_today=$1 WHERE id=$2`
    _, err := r.DB.Exec(query, usedToday, id)
    return err
}

func (r *UserRepository) ResetUsage(id int, resetAt time.Time) error {
    query := `UPDATE users SET used_today=0, last_reset=$1 WHERE id=$2`
    _, err := r.DB.Exec(query, resetAt, id)
    return err
}

var _ UserRepositoryInterface = (*UserRepository)(nil)
